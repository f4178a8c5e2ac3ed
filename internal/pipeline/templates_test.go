// Where: internal/pipeline/templates_test.go
// What: Template loading and rendering tests.
package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kramester/tk-config-cbfx2/internal/launch"
)

func TestLoadTemplates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.yml")
	payload := `paths:
  pipe_shot_work: "/jobs/{{ .Show }}/{{ .Shot }}/work"
  shot_publish: "/jobs/{{ .Show }}/publish"
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	file, err := LoadTemplates(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(file.Paths) != 2 {
		t.Fatalf("paths = %v", file.Paths)
	}
}

func TestLoadTemplatesMissingFile(t *testing.T) {
	_, err := LoadTemplates(filepath.Join(t.TempDir(), "absent.yml"))
	if !os.IsNotExist(err) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestResolveOnlyPipePrefixed(t *testing.T) {
	file := TemplatesFile{Paths: map[string]string{
		"pipe_shot_work": "/jobs/{{ .Show }}/{{ .Shot }}",
		"shot_publish":   "/jobs/{{ .Show }}/publish",
	}}
	tc := TemplateContext{Show: "proj42", Shot: "sh010"}

	resolved := Resolve(file, tc, nil)
	if len(resolved) != 1 {
		t.Fatalf("resolved = %v", resolved)
	}
	if resolved["PIPE_SHOT_WORK"] != "/jobs/proj42/sh010" {
		t.Fatalf("PIPE_SHOT_WORK = %q", resolved["PIPE_SHOT_WORK"])
	}
}

func TestResolveSprigFunctions(t *testing.T) {
	file := TemplatesFile{Paths: map[string]string{
		"pipe_show_upper": "{{ .Show | upper }}",
	}}

	resolved := Resolve(file, TemplateContext{Show: "proj42"}, nil)
	if resolved["PIPE_SHOW_UPPER"] != "PROJ42" {
		t.Fatalf("resolved = %v", resolved)
	}
}

func TestResolveBadTemplateIsSkipped(t *testing.T) {
	file := TemplatesFile{Paths: map[string]string{
		"pipe_broken": "{{ .Show",
		"pipe_fine":   "{{ .Show }}",
	}}
	var warned int
	resolved := Resolve(file, TemplateContext{Show: "proj42"}, func(string, ...any) {
		warned++
	})

	if warned != 1 {
		t.Fatalf("warned = %d", warned)
	}
	if _, ok := resolved["PIPE_BROKEN"]; ok {
		t.Fatalf("broken template should be skipped")
	}
	if resolved["PIPE_FINE"] != "proj42" {
		t.Fatalf("resolved = %v", resolved)
	}
}

func TestContextForEntityKinds(t *testing.T) {
	cases := []struct {
		entity launch.Entity
		check  func(TemplateContext) bool
	}{
		{launch.Entity{Type: launch.EntityShot, Code: "sh010"}, func(tc TemplateContext) bool { return tc.Shot == "sh010" }},
		{launch.Entity{Type: launch.EntitySequence, Code: "sq100"}, func(tc TemplateContext) bool { return tc.Seq == "sq100" }},
		{launch.Entity{Type: launch.EntityAsset, Code: "chair"}, func(tc TemplateContext) bool { return tc.Asset == "chair" }},
	}
	for _, tc := range cases {
		lc := launch.Context{Entity: tc.entity, UserName: "jo", Engine: "tk-nuke"}
		got := ContextFor(lc, "proj42")
		if got.Show != "proj42" || got.User != "jo" || got.Engine != "tk-nuke" || !tc.check(got) {
			t.Fatalf("ContextFor(%+v) = %+v", tc.entity, got)
		}
	}
}
