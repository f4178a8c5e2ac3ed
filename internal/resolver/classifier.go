// Where: internal/resolver/classifier.go
// What: Split rule value blocks into per-method key/value buckets.
// Why: Merge application needs ordered value lists keyed by variable name.
package resolver

import (
	"sort"
	"strings"

	"github.com/kramester/tk-config-cbfx2/internal/tracking"
)

// Operations holds the classified variable values, one mapping per merge
// method. Each key's value list preserves rule order then line order;
// duplicates are kept and applied in sequence.
type Operations struct {
	Replace map[string][]string
	Prepend map[string][]string
	Append  map[string][]string
}

// NewOperations returns an Operations with initialized buckets.
func NewOperations() Operations {
	return Operations{
		Replace: map[string][]string{},
		Prepend: map[string][]string{},
		Append:  map[string][]string{},
	}
}

// Keys returns the union of variable names across all three buckets,
// sorted. The union is a set: order of accumulation does not matter.
func (o Operations) Keys() []string {
	seen := map[string]struct{}{}
	for _, bucket := range []map[string][]string{o.Replace, o.Prepend, o.Append} {
		for key := range bucket {
			seen[key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Classify splits each selected rule's platform value block into lines,
// parses each line as KEY=VALUE on the first '=', and appends the value to
// the bucket named by the rule's merge method. A malformed line or an
// unrecognized merge method is logged and skipped without aborting
// anything else.
func Classify(
	rules []tracking.VariableRule,
	platform tracking.Platform,
	warnf func(format string, args ...any),
) Operations {
	if warnf == nil {
		warnf = func(string, ...any) {}
	}
	ops := NewOperations()

	for _, rule := range rules {
		method, err := tracking.ParseMergeMethod(rule.MergeMethod)
		if err != nil {
			warnf("rule %q: %v", rule.Code, err)
			continue
		}

		var bucket map[string][]string
		switch method {
		case tracking.MergeReplace:
			bucket = ops.Replace
		case tracking.MergePrepend:
			bucket = ops.Prepend
		case tracking.MergeAppend:
			bucket = ops.Append
		}

		for _, line := range strings.Split(rule.EnvBlock(platform), "\n") {
			line = strings.TrimRight(line, "\r")
			if strings.TrimSpace(line) == "" {
				continue
			}
			key, value, ok := strings.Cut(line, "=")
			if !ok {
				warnf("rule %q: line %q has no '=' separator", rule.Code, line)
				continue
			}
			bucket[key] = append(bucket[key], value)
		}
	}
	return ops
}
