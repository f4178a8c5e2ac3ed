// Where: internal/resolver/engine_test.go
// What: End-to-end tests for the resolution pipeline.
// Why: Pass ordering and expansion against the mutating environment are load-bearing.
package resolver

import (
	"context"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/kramester/tk-config-cbfx2/internal/launch"
	"github.com/kramester/tk-config-cbfx2/internal/meta"
	"github.com/kramester/tk-config-cbfx2/internal/tracking"
)

type fakeRuleFinder struct {
	rules  []tracking.VariableRule
	err    error
	filter tracking.Filter
}

func (f *fakeRuleFinder) FindRules(_ context.Context, filter tracking.Filter) ([]tracking.VariableRule, error) {
	f.filter = filter
	if f.err != nil {
		return nil, f.err
	}
	// Mimic a real store: only return rules the filter matches.
	var matched []tracking.VariableRule
	for _, rule := range f.rules {
		ok, err := filter.Matches(rule)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, rule)
		}
	}
	return matched, nil
}

func sep() string {
	return string(os.PathListSeparator)
}

func testEngine(finder *fakeRuleFinder) Engine {
	return Engine{
		Rules:    finder,
		Platform: tracking.PlatformLinux,
	}
}

func TestResolveFetchFailureIsFatal(t *testing.T) {
	engine := testEngine(&fakeRuleFinder{err: errors.New("tracking down")})
	_, err := engine.Resolve(context.Background(), launch.Context{}, Placeholders{})
	if err == nil || !strings.Contains(err.Error(), "tracking down") {
		t.Fatalf("err = %v", err)
	}
}

func TestReplaceLastWins(t *testing.T) {
	finder := &fakeRuleFinder{rules: []tracking.VariableRule{
		{ID: 1, Code: "a", Status: "act", MergeMethod: "replace", EnvLinux: "MYVAR=v1"},
		{ID: 2, Code: "b", Status: "act", MergeMethod: "replace", EnvLinux: "MYVAR=v2"},
	}}
	engine := testEngine(finder)

	ops, err := engine.Resolve(context.Background(), launch.Context{ProjectID: 7}, Placeholders{})
	if err != nil {
		t.Fatal(err)
	}

	env := Environ{}
	engine.Apply(ops, env)
	if env["MYVAR"] != "v2" {
		t.Fatalf("MYVAR = %q, want v2", env["MYVAR"])
	}
}

func TestPrependLandsBeforeEarlierContent(t *testing.T) {
	finder := &fakeRuleFinder{rules: []tracking.VariableRule{
		{ID: 1, Code: "a", Status: "act", MergeMethod: "prepend", EnvLinux: "PATHISH=v1\nPATHISH=v2"},
	}}
	engine := testEngine(finder)

	ops, err := engine.Resolve(context.Background(), launch.Context{ProjectID: 7}, Placeholders{})
	if err != nil {
		t.Fatal(err)
	}

	env := Environ{"PATHISH": "existing"}
	engine.Apply(ops, env)
	want := "v2" + sep() + "v1" + sep() + "existing"
	if env["PATHISH"] != want {
		t.Fatalf("PATHISH = %q, want %q", env["PATHISH"], want)
	}
}

func TestReplaceThenAppendEndToEnd(t *testing.T) {
	finder := &fakeRuleFinder{rules: []tracking.VariableRule{
		{ID: 1, Code: "a", Status: "act", MergeMethod: "replace", EnvLinux: "MYVAR=foo"},
		{ID: 2, Code: "b", Status: "act", MergeMethod: "append", EnvLinux: "MYVAR=bar"},
	}}
	engine := testEngine(finder)

	ops, err := engine.Resolve(context.Background(), launch.Context{ProjectID: 7}, Placeholders{})
	if err != nil {
		t.Fatal(err)
	}

	env := Environ{"MYVAR": "stale"}
	touched := engine.Apply(ops, env)

	if want := "foo" + sep() + "bar"; env["MYVAR"] != want {
		t.Fatalf("MYVAR = %q, want %q", env["MYVAR"], want)
	}
	if !reflect.DeepEqual(touched, []string{"MYVAR"}) {
		t.Fatalf("touched = %v", touched)
	}
	if env[meta.TouchedVarsEnv] != "MYVAR" {
		t.Fatalf("%s = %q", meta.TouchedVarsEnv, env[meta.TouchedVarsEnv])
	}
}

func TestApplyExpandsAgainstMutatedEnvironment(t *testing.T) {
	finder := &fakeRuleFinder{rules: []tracking.VariableRule{
		{ID: 1, Code: "a", Status: "act", MergeMethod: "replace", EnvLinux: "ROOT=/jobs"},
		{ID: 2, Code: "b", Status: "act", MergeMethod: "append", EnvLinux: "TOOLS=$ROOT/tools"},
	}}
	engine := testEngine(finder)

	ops, err := engine.Resolve(context.Background(), launch.Context{ProjectID: 7}, Placeholders{})
	if err != nil {
		t.Fatal(err)
	}

	env := Environ{}
	engine.Apply(ops, env)
	if env["TOOLS"] != "/jobs/tools" {
		t.Fatalf("TOOLS = %q", env["TOOLS"])
	}
}

func TestApplyRecordsDebugFlag(t *testing.T) {
	engine := testEngine(&fakeRuleFinder{})
	env := Environ{meta.DebugEnv: "1"}
	ops := NewOperations()
	ops.Replace["A"] = []string{"x"}

	engine.Apply(ops, env)
	want := "A" + sep() + meta.DebugEnv
	if env[meta.TouchedVarsEnv] != want {
		t.Fatalf("%s = %q, want %q", meta.TouchedVarsEnv, env[meta.TouchedVarsEnv], want)
	}
}

func TestMalformedRuleDoesNotAffectOthers(t *testing.T) {
	finder := &fakeRuleFinder{rules: []tracking.VariableRule{
		{ID: 1, Code: "broken", Status: "act", MergeMethod: "replace", EnvLinux: "MALFORMED"},
		{ID: 2, Code: "fine", Status: "act", MergeMethod: "replace", EnvLinux: "GOOD=yes"},
	}}
	engine := testEngine(finder)

	ops, err := engine.Resolve(context.Background(), launch.Context{ProjectID: 7}, Placeholders{})
	if err != nil {
		t.Fatal(err)
	}

	env := Environ{}
	engine.Apply(ops, env)
	if env["GOOD"] != "yes" {
		t.Fatalf("GOOD = %q", env["GOOD"])
	}
	if _, ok := env["MALFORMED"]; ok {
		t.Fatalf("malformed line leaked into the environment")
	}
}

func TestResolveSubstitutesPlaceholders(t *testing.T) {
	finder := &fakeRuleFinder{rules: []tracking.VariableRule{
		{ID: 1, Code: "a", Status: "act", MergeMethod: "replace", EnvLinux: "WORK=/assets/$SHOW/$SHOT"},
	}}
	engine := testEngine(finder)

	lc := launch.Context{
		ProjectID: 42,
		Entity:    launch.Entity{Type: launch.EntityShot, Code: "sh010"},
	}
	values := DerivePlaceholders(context.Background(), lc, fakeProjectLookup{code: "proj42"}, nil)
	ops, err := engine.Resolve(context.Background(), lc, values)
	if err != nil {
		t.Fatal(err)
	}
	if got := ops.Replace["WORK"][0]; got != "/assets/proj42/sh010" {
		t.Fatalf("WORK = %q", got)
	}
}

func TestApplyPreservesUnderivedTokens(t *testing.T) {
	finder := &fakeRuleFinder{rules: []tracking.VariableRule{
		{ID: 1, Code: "a", Status: "act", MergeMethod: "replace", EnvLinux: "WORK=/assets/$SHOW/$SHOT"},
	}}
	engine := testEngine(finder)

	// A Sequence entity derives no shot code, so $SHOT stays a token.
	lc := launch.Context{
		ProjectID: 42,
		Entity:    launch.Entity{Type: launch.EntitySequence, Code: "sq100"},
	}
	values := DerivePlaceholders(context.Background(), lc, fakeProjectLookup{code: "proj42"}, nil)
	ops, err := engine.Resolve(context.Background(), lc, values)
	if err != nil {
		t.Fatal(err)
	}
	if got := ops.Replace["WORK"][0]; got != "/assets/proj42/$SHOT" {
		t.Fatalf("substituted WORK = %q", got)
	}

	env := Environ{}
	engine.Apply(ops, env)
	if env["WORK"] != "/assets/proj42/$SHOT" {
		t.Fatalf("applied WORK = %q, want the token kept verbatim", env["WORK"])
	}
}
