// Where: internal/resolver/selector.go
// What: Rule selection: filter construction plus local predicates.
// Why: Narrow the candidate rule set to the records applicable to this launch.
package resolver

import (
	"errors"

	"github.com/kramester/tk-config-cbfx2/internal/launch"
	"github.com/kramester/tk-config-cbfx2/internal/meta"
	"github.com/kramester/tk-config-cbfx2/internal/tracking"
)

// SelectionFilter builds the store filter for a launch: active status,
// exclusion lists, and the project/user/engine scopes. Scope fields use
// nil to mean "applies to all".
func SelectionFilter(lc launch.Context) tracking.Filter {
	filter := tracking.Filter{}.
		Where(tracking.FieldStatus, tracking.OpIs, meta.StatusActive).
		Where(tracking.FieldExcludeProjects, tracking.OpExcludes, lc.ProjectID).
		Where(tracking.FieldExcludeUsers, tracking.OpExcludes, lc.UserID).
		AnyOf(
			tracking.Condition{Field: tracking.FieldProjects, Op: tracking.OpContains, Value: lc.ProjectID},
			tracking.Condition{Field: tracking.FieldProjects, Op: tracking.OpIs, Value: nil},
		).
		AnyOf(
			tracking.Condition{Field: tracking.FieldUsers, Op: tracking.OpContains, Value: lc.UserID},
			tracking.Condition{Field: tracking.FieldUsers, Op: tracking.OpIs, Value: nil},
		)

	if lc.Engine == "" {
		// Without an engine only engine-agnostic rules apply.
		return filter.Where(tracking.FieldHostEngines, tracking.OpIs, nil)
	}
	return filter.AnyOf(
		tracking.Condition{Field: tracking.FieldHostEngines, Op: tracking.OpContains, Value: lc.Engine},
		tracking.Condition{Field: tracking.FieldHostEngines, Op: tracking.OpIs, Value: nil},
	)
}

// SelectRules applies the local predicates the store cannot evaluate: a
// non-empty value block for this platform and the host version bounds.
// A rule with unparseable bounds is skipped with a warning, never treated
// as a match, and never aborts the remaining rules.
func SelectRules(
	rules []tracking.VariableRule,
	platform tracking.Platform,
	appVersion string,
	warnf func(format string, args ...any),
) []tracking.VariableRule {
	if warnf == nil {
		warnf = func(string, ...any) {}
	}

	var selected []tracking.VariableRule
	for _, rule := range rules {
		if rule.EnvBlock(platform) == "" {
			continue
		}

		ok, err := versionInBounds(appVersion, rule)
		if err != nil {
			warnf("rule %q: %v", rule.Code, err)
			continue
		}
		if ok {
			selected = append(selected, rule)
		}
	}
	return selected
}

func versionInBounds(appVersion string, rule tracking.VariableRule) (bool, error) {
	ok, err := MinCheck(appVersion, rule.HostMinVersion)
	if err != nil || !ok {
		return false, err
	}
	return MaxCheck(appVersion, rule.HostMaxVersion)
}

// IsVersionError reports whether err came from version parsing.
func IsVersionError(err error) bool {
	return errors.Is(err, ErrVersionParse)
}
