// Where: internal/resolver/placeholder.go
// What: Context placeholder derivation and substitution.
// Why: Rule values may reference the current sequence/shot/project/asset by token.
package resolver

import (
	"context"
	"strings"

	"github.com/kramester/tk-config-cbfx2/internal/launch"
	"github.com/kramester/tk-config-cbfx2/internal/tracking"
)

// Placeholder tokens recognized in rule values. TokenShow and TokenProj
// are aliases for the same project code.
const (
	TokenSeq   = "$SEQ"
	TokenShot  = "$SHOT"
	TokenShow  = "$SHOW"
	TokenProj  = "$PROJ"
	TokenAsset = "$ASSET"
)

// Placeholders holds the derived substitution values. An empty field means
// the token has no value in this context and is left unchanged.
type Placeholders struct {
	Project  string
	Sequence string
	Shot     string
	Asset    string
}

// DerivePlaceholders computes substitution values from the launch context.
// The project code comes from the entity itself when the entity is the
// project, otherwise from a project lookup. A failed lookup means no
// project code, not a failed resolution.
func DerivePlaceholders(
	ctx context.Context,
	lc launch.Context,
	projects tracking.ProjectLookup,
	warnf func(format string, args ...any),
) Placeholders {
	if warnf == nil {
		warnf = func(string, ...any) {}
	}

	var values Placeholders
	switch lc.Entity.Type {
	case launch.EntityProject:
		values.Project = lc.Entity.Code
	case launch.EntitySequence:
		values.Sequence = lc.Entity.Code
	case launch.EntityShot:
		values.Shot = lc.Entity.Code
	case launch.EntityAsset:
		values.Asset = lc.Entity.Code
	}

	if values.Project == "" && projects != nil {
		code, err := projects.ProjectCode(ctx, lc.ProjectID)
		if err != nil {
			warnf("project code lookup failed: %v", err)
		} else {
			values.Project = code
		}
	}
	return values
}

// Substitute replaces every token that has a derived value. Tokens with no
// value pass through untouched rather than being blanked.
func (p Placeholders) Substitute(raw string) string {
	if p.Sequence != "" {
		raw = strings.ReplaceAll(raw, TokenSeq, p.Sequence)
	}
	if p.Shot != "" {
		raw = strings.ReplaceAll(raw, TokenShot, p.Shot)
	}
	if p.Project != "" {
		raw = strings.ReplaceAll(raw, TokenShow, p.Project)
		raw = strings.ReplaceAll(raw, TokenProj, p.Project)
	}
	if p.Asset != "" {
		raw = strings.ReplaceAll(raw, TokenAsset, p.Asset)
	}
	return raw
}

// SubstituteAll rewrites every value in every bucket in place.
func (p Placeholders) SubstituteAll(ops Operations) {
	for _, bucket := range []map[string][]string{ops.Replace, ops.Prepend, ops.Append} {
		for key, values := range bucket {
			for i, value := range values {
				bucket[key][i] = p.Substitute(value)
			}
		}
	}
}
