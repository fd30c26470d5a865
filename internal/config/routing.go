package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/raphaelgruber/vidqa/internal/classify"
)

// Routing is the question-routing data read from VIDQA_ROUTING_FILE:
// classifier keyword lists and the probe queries of broad retrieval.
// Empty lists keep the built-in defaults.
//
//	summary: [recap, tl;dr]
//	deep: [walk me through]
//	probes: [opening remarks, final verdict]
type Routing struct {
	classify.Keywords `yaml:",inline"`
	Probes            []string `yaml:"probes"`
}

// IsZero reports whether no routing data was configured.
func (r Routing) IsZero() bool {
	return len(r.Summary) == 0 && len(r.Deep) == 0 && len(r.Probes) == 0
}

// ParseRouting decodes routing YAML. Unknown keys are rejected.
func ParseRouting(data []byte) (Routing, error) {
	var r Routing
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return Routing{}, fmt.Errorf("decode routing: %w", err)
	}
	return r, nil
}

// LoadRouting reads routing data from a YAML file.
func LoadRouting(path string) (Routing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Routing{}, fmt.Errorf("read routing file: %w", err)
	}
	return ParseRouting(data)
}
