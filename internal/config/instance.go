package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Instance is a problem instance: the node positions of a tour.
type Instance struct {
	Points []PointSpec `json:"points" yaml:"points"`
}

// PointSpec is the position of a single node.
type PointSpec struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// LoadInstance reads a YAML instance file.
func LoadInstance(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading instance file: %w", err)
	}

	var inst Instance
	if err := yaml.Unmarshal(data, &inst); err != nil {
		return nil, fmt.Errorf("parsing instance file: %w", err)
	}
	return &inst, nil
}
