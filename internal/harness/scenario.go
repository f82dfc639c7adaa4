package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: an ordered list of steps
// executed against the public date-time operations.
type Scenario struct {
	// Name uniquely identifies this scenario. It doubles as the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Steps contains the operations to execute in order.
	Steps []Step `yaml:"steps"`
}

// Step is a single operation with its inputs, options, and expectation.
// Which fields apply depends on Op; unused fields are left empty.
type Step struct {
	// Op names the operation, e.g. "zoned" or "diff_datetime".
	Op string `yaml:"op"`

	// Input is the primary ISO / RFC 9557 operand.
	Input string `yaml:"input,omitempty"`

	// Other is the second operand of difference operations.
	Other string `yaml:"other,omitempty"`

	// Duration is an ISO 8601 duration operand.
	Duration string `yaml:"duration,omitempty"`

	// Relative is a plain date anchoring calendar-unit arithmetic.
	Relative string `yaml:"relative,omitempty"`

	// Overflow, Disambiguation, and Offset name the resolution options
	// in their textual form ("constrain", "earlier", "prefer", ...).
	Overflow       string `yaml:"overflow,omitempty"`
	Disambiguation string `yaml:"disambiguation,omitempty"`
	Offset         string `yaml:"offset,omitempty"`

	// LargestUnit and SmallestUnit bound difference and rounding
	// operations.
	LargestUnit  string `yaml:"largest_unit,omitempty"`
	SmallestUnit string `yaml:"smallest_unit,omitempty"`

	// Increment and Mode refine rounding. Increment 0 means 1.
	Increment int64  `yaml:"increment,omitempty"`
	Mode      string `yaml:"mode,omitempty"`

	// Unit is the target unit of the total operation.
	Unit string `yaml:"unit,omitempty"`

	// Expect is the expected serialized output. Empty means the output
	// is validated only by the golden transcript.
	Expect string `yaml:"expect,omitempty"`

	// ExpectError is the expected error kind, "range" or "type". A step
	// with ExpectError set must fail with that kind.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// LoadScenario loads and validates a single scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: missing name", path)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s: no steps", path)
	}
	for i, st := range s.Steps {
		if st.Op == "" {
			return nil, fmt.Errorf("scenario %s: step %d has no op", path, i+1)
		}
		if st.Expect != "" && st.ExpectError != "" {
			return nil, fmt.Errorf("scenario %s: step %d sets both expect and expect_error", path, i+1)
		}
	}
	return &s, nil
}

// LoadScenarios loads every *.yaml scenario under dir, sorted by file
// name for stable ordering.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
