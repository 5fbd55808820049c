package model

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlModel is the on-disk YAML layout:
//
//	variables:
//	  a: "!b"
//	  b: "a & p"
//
// Variable order inside a YAML mapping is not reliable across decoders, so
// variables are declared in sorted name order.
type yamlModel struct {
	Variables map[string]string `yaml:"variables"`
}

// ParseYAML reads a network from YAML data.
func ParseYAML(data []byte) (*Network, error) {
	var m yamlModel
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse YAML model: %w", err)
	}
	if len(m.Variables) == 0 {
		return nil, fmt.Errorf("YAML model declares no variables")
	}

	names := make([]string, 0, len(m.Variables))
	for name := range m.Variables {
		names = append(names, name)
	}
	sort.Strings(names)

	net, err := NewNetwork(names)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		expr, err := ParseExpr(m.Variables[name])
		if err != nil {
			return nil, fmt.Errorf("update of %q: %w", name, err)
		}
		if err := net.SetUpdate(name, expr); err != nil {
			return nil, err
		}
	}
	if err := net.Validate(); err != nil {
		return nil, err
	}
	return net, nil
}

// FromFile loads a network model, dispatching on the file extension:
// ".yaml"/".yml" for the YAML layout, anything else for the ".bnet" line
// format.
func FromFile(path string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseBNet(strings.NewReader(string(data)))
	}
}
