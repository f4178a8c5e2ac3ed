// Where: internal/resolver/engine.go
// What: Resolution pipeline orchestration.
// Why: One linear pass: select, classify, substitute, apply.
package resolver

import (
	"context"
	"fmt"
	"sort"

	"github.com/kramester/tk-config-cbfx2/internal/envutil"
	"github.com/kramester/tk-config-cbfx2/internal/launch"
	"github.com/kramester/tk-config-cbfx2/internal/meta"
	"github.com/kramester/tk-config-cbfx2/internal/tracking"
)

// Engine resolves the environment operations for a launch. Rules come
// from the store; Platform picks which raw value block each rule
// contributes. Warnf receives recoverable per-rule problems, Debugf the
// verbose trace.
type Engine struct {
	Rules    tracking.RuleFinder
	Platform tracking.Platform
	Warnf    func(format string, args ...any)
	Debugf   func(format string, args ...any)
}

func (e Engine) warnf(format string, args ...any) {
	if e.Warnf != nil {
		e.Warnf(format, args...)
	}
}

func (e Engine) debugf(format string, args ...any) {
	if e.Debugf != nil {
		e.Debugf(format, args...)
	}
}

// Resolve runs the pure half of the pipeline: fetch, select, classify,
// substitute placeholders. The caller derives the placeholder values once
// per launch and passes them in. A fetch failure is fatal; everything
// after it recovers per rule. No environment is touched here.
func (e Engine) Resolve(ctx context.Context, lc launch.Context, values Placeholders) (Operations, error) {
	if e.Rules == nil {
		return Operations{}, fmt.Errorf("rule finder is nil")
	}

	rules, err := e.Rules.FindRules(ctx, SelectionFilter(lc))
	if err != nil {
		return Operations{}, fmt.Errorf("fetch variable rules: %w", err)
	}
	e.debugf("fetched %d candidate rules", len(rules))

	selected := SelectRules(rules, e.Platform, lc.Version, e.Warnf)
	for _, rule := range selected {
		e.debugf("valid rule found: %s", rule.Code)
	}

	ops := Classify(selected, e.Platform, e.Warnf)
	values.SubstituteAll(ops)

	return ops, nil
}

// Apply mutates env with the classified operations: the replace pass
// first to establish baselines, then prepends, then appends. Each value
// is $VAR-expanded against the environment as mutated so far, so the pass
// order is load-bearing. The touched variable names (plus the debug flag
// when set) are path-appended to the discovery variable. Returns the
// sorted touched names.
func (e Engine) Apply(ops Operations, env Environ) []string {
	touched := ops.Keys()
	for _, key := range touched {
		env[meta.TouchedVarsEnv] = envutil.AppendPath(env[meta.TouchedVarsEnv], env.Expand(key))
	}
	if env[meta.DebugEnv] != "" {
		env[meta.TouchedVarsEnv] = envutil.AppendPath(env[meta.TouchedVarsEnv], meta.DebugEnv)
	}

	for _, key := range sortedKeys(ops.Replace) {
		for _, value := range ops.Replace[key] {
			expanded := env.Expand(value)
			e.debugf("setting env var: %s = %s", key, expanded)
			env[key] = expanded
		}
	}
	for _, key := range sortedKeys(ops.Prepend) {
		for _, value := range ops.Prepend[key] {
			expanded := env.Expand(value)
			e.debugf("prepending env var: %s = %s", key, expanded)
			env[key] = envutil.PrependPath(env[key], expanded)
		}
	}
	for _, key := range sortedKeys(ops.Append) {
		for _, value := range ops.Append[key] {
			expanded := env.Expand(value)
			e.debugf("appending env var: %s = %s", key, expanded)
			env[key] = envutil.AppendPath(env[key], expanded)
		}
	}

	for _, key := range touched {
		e.debugf("resolved env var: %s = %s", key, env[key])
	}
	return touched
}

func sortedKeys(bucket map[string][]string) []string {
	keys := make([]string, 0, len(bucket))
	for key := range bucket {
		keys = append(keys, key)
	}
	// Deterministic application order across keys; within a key the list
	// order already carries the rule evaluation order.
	sort.Strings(keys)
	return keys
}
