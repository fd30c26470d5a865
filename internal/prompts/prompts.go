// Package prompts holds the named prompt templates used to query the language model.
package prompts

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/prompts"
	"gopkg.in/yaml.v3"

	"github.com/raphaelgruber/vidqa/internal/models"
)

// Refusal is the fixed answer for questions the transcript does not cover.
// Presentation layers match on it verbatim.
const Refusal = "The video does not discuss this topic."

// Template names.
const (
	NameAnswer   = "answer"
	NameSummary  = "summary"
	NameCondense = "condense"
)

// refusalVar is injected into every render.
const refusalVar = "refusal"

var (
	ErrUnknownTemplate = errors.New("unknown template")
	ErrMissingInput    = errors.New("missing template input")
)

//go:embed templates.yaml
var defaultTemplates []byte

type templateFile struct {
	Version   string                  `yaml:"version"`
	Templates map[string]templateDef `yaml:"templates"`
}

type templateDef struct {
	Grounded bool     `yaml:"grounded"`
	Inputs   []string `yaml:"inputs"`
	Text     string   `yaml:"text"`
}

type entry struct {
	def      templateDef
	template prompts.PromptTemplate
}

// Library is a versioned set of named templates.
type Library struct {
	version   string
	templates map[string]entry
}

// Parse builds a Library from YAML. Grounded templates must reference the
// refusal literal so the model always has a fixed way to decline.
func Parse(data []byte) (*Library, error) {
	var f templateFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if len(f.Templates) == 0 {
		return nil, fmt.Errorf("parse templates: no templates defined")
	}

	lib := &Library{version: f.Version, templates: make(map[string]entry, len(f.Templates))}
	for name, def := range f.Templates {
		if strings.TrimSpace(def.Text) == "" {
			return nil, fmt.Errorf("template %q: empty text", name)
		}
		if def.Grounded && !strings.Contains(def.Text, "{{."+refusalVar+"}}") {
			return nil, fmt.Errorf("template %q: grounded template does not reference refusal", name)
		}
		inputs := append(append([]string{}, def.Inputs...), refusalVar)
		lib.templates[name] = entry{
			def:      def,
			template: prompts.NewPromptTemplate(def.Text, inputs),
		}
	}
	return lib, nil
}

var loadDefault = sync.OnceValues(func() (*Library, error) {
	return Parse(defaultTemplates)
})

// Default returns the embedded template library.
func Default() (*Library, error) {
	return loadDefault()
}

// Version returns the template set version.
func (l *Library) Version() string {
	return l.version
}

// Names returns the template names in the library.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.templates))
	for n := range l.templates {
		names = append(names, n)
	}
	return names
}

// Render formats the named template. Every declared input must be present in
// values; optional values (such as history) may be passed in addition.
func (l *Library) Render(name string, values map[string]any) (string, error) {
	e, ok := l.templates[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}
	for _, in := range e.def.Inputs {
		if _, ok := values[in]; !ok {
			return "", fmt.Errorf("render %s: %w: %s", name, ErrMissingInput, in)
		}
	}

	vars := make(map[string]any, len(values)+1)
	for k, v := range values {
		vars[k] = v
	}
	vars[refusalVar] = Refusal

	out, err := e.template.Format(vars)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return strings.TrimSpace(out), nil
}

// ContextBlock renders chunks as the excerpt block fed to the model. Each
// chunk with a start time is prefixed "[MM:SS] "; chunks are separated by a
// blank line.
func ContextBlock(docs []models.Chunk) string {
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		if d.StartTime != nil {
			parts = append(parts, "["+models.FormatTimestamp(models.FloorSeconds(*d.StartTime))+"] "+d.Content)
			continue
		}
		parts = append(parts, d.Content)
	}
	return strings.Join(parts, "\n\n")
}
