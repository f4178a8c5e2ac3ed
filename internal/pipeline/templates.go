// Where: internal/pipeline/templates.go
// What: Pipeline path template loading and resolution.
// Why: pipe_* templates become env vars so host apps find show/shot work areas.
package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/kramester/tk-config-cbfx2/internal/launch"
	"gopkg.in/yaml.v3"
)

// templatePrefix selects which template keys are exported to the
// environment.
const templatePrefix = "pipe_"

// TemplatesFile is the parsed templates.yml.
type TemplatesFile struct {
	Paths map[string]string `yaml:"paths"`
}

// TemplateContext carries the fields a path template may reference.
type TemplateContext struct {
	Show   string
	Seq    string
	Shot   string
	Asset  string
	User   string
	Engine string
}

// ContextFor builds a TemplateContext from a launch context and the
// derived project code.
func ContextFor(lc launch.Context, projectCode string) TemplateContext {
	tc := TemplateContext{
		Show:   projectCode,
		User:   lc.UserName,
		Engine: lc.Engine,
	}
	switch lc.Entity.Type {
	case launch.EntitySequence:
		tc.Seq = lc.Entity.Code
	case launch.EntityShot:
		tc.Shot = lc.Entity.Code
	case launch.EntityAsset:
		tc.Asset = lc.Entity.Code
	}
	return tc
}

// LoadTemplates reads and parses a templates.yml file.
func LoadTemplates(path string) (TemplatesFile, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return TemplatesFile{}, err
	}
	var file TemplatesFile
	if err := yaml.Unmarshal(payload, &file); err != nil {
		return TemplatesFile{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return file, nil
}

// Resolve renders every pipe_* template against the context and returns
// the results keyed by the uppercased template name. A template that
// fails to parse or render is reported through warnf and skipped; one bad
// template never blocks the rest.
func Resolve(
	file TemplatesFile,
	tc TemplateContext,
	warnf func(format string, args ...any),
) map[string]string {
	if warnf == nil {
		warnf = func(string, ...any) {}
	}

	names := make([]string, 0, len(file.Paths))
	for name := range file.Paths {
		if strings.HasPrefix(name, templatePrefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	resolved := make(map[string]string, len(names))
	for _, name := range names {
		rendered, err := render(name, file.Paths[name], tc)
		if err != nil {
			warnf("template %q: %v", name, err)
			continue
		}
		resolved[strings.ToUpper(name)] = rendered
	}
	return resolved
}

func render(name, text string, tc TemplateContext) (string, error) {
	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, tc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
