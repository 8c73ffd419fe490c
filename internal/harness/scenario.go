package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/shelflog/internal/book"
)

// Scenario is a scripted run against a fresh store.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Locale is a BCP 47 tag for name collation. Empty means Hebrew.
	Locale string `yaml:"locale,omitempty"`

	// Seed is written to the slot before the initial load.
	Seed *string `yaml:"seed,omitempty"`

	// Steps run in order after the initial load.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final trace and state.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one action, an expect block, or both.
type Step struct {
	Add        *book.Book   `yaml:"add,omitempty"`
	Update     *book.Book   `yaml:"update,omitempty"`
	Delete     *string      `yaml:"delete,omitempty"`
	Clear      bool         `yaml:"clear,omitempty"`
	Replace    *[]book.Book `yaml:"replace,omitempty"`
	Search     *string      `yaml:"search,omitempty"`
	Sort       *string      `yaml:"sort,omitempty"`
	Reload     bool         `yaml:"reload,omitempty"`
	FailWrites *bool        `yaml:"fail_writes,omitempty"`
	FailReads  *bool        `yaml:"fail_reads,omitempty"`
	Corrupt    *string      `yaml:"corrupt,omitempty"`

	// Expect is checked after the step's action, if any.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect checks the store at a point in the scenario. Unset fields are not
// checked.
type Expect struct {
	// Visible lists the names in the projection, in order.
	Visible []string `yaml:"visible,omitempty"`

	// Collection lists the names in the collection, in insertion order.
	Collection []string `yaml:"collection,omitempty"`

	// Count is the collection size.
	Count *int `yaml:"count,omitempty"`

	// Stored is the number of books in the slot; 0 if the slot is absent.
	Stored *int `yaml:"stored,omitempty"`

	// Error must appear in the error of the most recent traced step.
	// "none" requires that step to have succeeded.
	Error string `yaml:"error,omitempty"`
}

// Assertion validates the final trace or state.
type Assertion struct {
	// Type is one of trace_contains, trace_order, trace_count, final_state.
	Type string `yaml:"type"`

	// Op is the step op (used by trace_contains, trace_count).
	Op string `yaml:"op,omitempty"`

	// Args are the expected op arguments (used by trace_contains).
	// Subset match - only specified fields are validated.
	Args map[string]any `yaml:"args,omitempty"`

	// Ops is the expected op order (used by trace_order).
	Ops []string `yaml:"ops,omitempty"`

	// Count is the expected number of occurrences (used by trace_count).
	Count int `yaml:"count,omitempty"`

	// Expect contains expected state values (used by final_state).
	Expect map[string]any `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertFinalState    = "final_state"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict fields catch typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, step); err != nil {
			return err
		}
	}
	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, step Step) error {
	actions := 0
	for _, set := range []bool{
		step.Add != nil,
		step.Update != nil,
		step.Delete != nil,
		step.Clear,
		step.Replace != nil,
		step.Search != nil,
		step.Sort != nil,
		step.Reload,
		step.FailWrites != nil,
		step.FailReads != nil,
		step.Corrupt != nil,
	} {
		if set {
			actions++
		}
	}

	switch {
	case actions > 1:
		return fmt.Errorf("steps[%d]: only one action per step", index)
	case actions == 0 && step.Expect == nil:
		return fmt.Errorf("steps[%d]: empty step", index)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Ops) == 0 {
			return fmt.Errorf("assertions[%d]: ops list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertFinalState:
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for final_state", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
