// SPDX-License-Identifier: MIT

package transform

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ParameterValue is one named numeric parameter of a transform.
type ParameterValue struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
}

// ParameterGroup reports what configuration produced a transform. Composite
// transforms list their parts under Steps, in application order.
type ParameterGroup struct {
	Name       string           `yaml:"name"`
	Parameters []ParameterValue `yaml:"parameters,omitempty"`
	Steps      []ParameterGroup `yaml:"steps,omitempty"`
}

// Value returns the named parameter.
func (g ParameterGroup) Value(name string) (float64, bool) {
	for _, p := range g.Parameters {
		if p.Name == name {
			return p.Value, true
		}
	}

	return 0, false
}

// Describe returns t's parameter description. Transforms that do not
// implement Describer are reported by Go type and dimensions.
func Describe(t Transform) ParameterGroup {
	if t == nil {
		return ParameterGroup{Name: "nil"}
	}
	if d, ok := t.(Describer); ok {
		return d.Describe()
	}

	return ParameterGroup{
		Name: fmt.Sprintf("%T", t),
		Parameters: []ParameterValue{
			{Name: "source_dimensions", Value: float64(t.SourceDimensions())},
			{Name: "target_dimensions", Value: float64(t.TargetDimensions())},
		},
	}
}

// MarshalYAML renders Describe(t) as YAML.
func MarshalYAML(t Transform) ([]byte, error) {
	return yaml.Marshal(Describe(t))
}

// describeName is a short label for logs and String methods.
func describeName(t Transform) string {
	if s, ok := t.(fmt.Stringer); ok {
		return s.String()
	}
	g := Describe(t)

	return g.Name + "(" + strconv.Itoa(t.SourceDimensions()) + "→" + strconv.Itoa(t.TargetDimensions()) + ")"
}
