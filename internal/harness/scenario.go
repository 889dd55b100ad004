package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Punitjadhav07/Hack-build/internal/model"
)

// Scenario is a store scenario: optional seed, setup actions, a checked flow
// and assertions on the outcome.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Seed runs store.seed before setup.
	Seed bool `yaml:"seed,omitempty"`

	// Setup actions establish initial state. They must succeed.
	Setup []ActionStep `yaml:"setup,omitempty"`

	// Flow is the sequence under test.
	Flow []FlowStep `yaml:"flow"`

	// Assertions check the trace, the final record and the broadcasts.
	Assertions []Assertion `yaml:"assertions"`
}

// ActionStep is one setup action.
type ActionStep struct {
	Action string         `yaml:"action"`
	Args   map[string]any `yaml:"args"`
}

// FlowStep invokes an action and optionally checks its completion.
type FlowStep struct {
	Invoke string         `yaml:"invoke"`
	Args   map[string]any `yaml:"args"`

	// Expect defaults to case Success with no result check.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause is the expected completion of a flow step.
type ExpectClause struct {
	Case string `yaml:"case"`

	// Result is matched as a subset of the action's JSON result.
	Result map[string]any `yaml:"result,omitempty"`
}

// Assertion checks the outcome of a run.
type Assertion struct {
	Type string `yaml:"type"`

	// trace_contains, trace_count
	Action string         `yaml:"action,omitempty"`
	Args   map[string]any `yaml:"args,omitempty"`

	// trace_order
	Actions []string `yaml:"actions,omitempty"`

	// final_state, collection_count, changes
	Collection string         `yaml:"collection,omitempty"`
	Where      map[string]any `yaml:"where,omitempty"`

	// final_state, stats
	Expect map[string]any `yaml:"expect,omitempty"`

	// trace_count, collection_count, changes
	Count int `yaml:"count,omitempty"`
}

// Assertion types.
const (
	AssertTraceContains   = "trace_contains"
	AssertTraceOrder      = "trace_order"
	AssertTraceCount      = "trace_count"
	AssertFinalState      = "final_state"
	AssertCollectionCount = "collection_count"
	AssertStats           = "stats"
	AssertChanges         = "changes"
)

// LoadScenario reads and validates a scenario file. Unknown fields are
// rejected so typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
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

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Setup {
		if step.Action == "" {
			return fmt.Errorf("setup[%d]: action is required", i)
		}
		if _, ok := actions[step.Action]; !ok {
			return fmt.Errorf("setup[%d]: unknown action %q", i, step.Action)
		}
	}

	for i, step := range s.Flow {
		if step.Invoke == "" {
			return fmt.Errorf("flow[%d]: invoke is required", i)
		}
		if _, ok := actions[step.Invoke]; !ok {
			return fmt.Errorf("flow[%d]: unknown action %q", i, step.Invoke)
		}
		if step.Expect != nil && step.Expect.Case == "" {
			return fmt.Errorf("flow[%d].expect: case is required", i)
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	needCollection := func() error {
		if a.Collection == "" {
			return fmt.Errorf("assertions[%d]: collection is required for %s", index, a.Type)
		}
		if _, ok := model.ParseCollection(a.Collection); !ok {
			return fmt.Errorf("assertions[%d]: unknown collection %q", index, a.Collection)
		}
		return nil
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Actions) == 0 {
			return fmt.Errorf("assertions[%d]: actions list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertFinalState:
		if err := needCollection(); err != nil {
			return err
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for final_state", index)
		}
	case AssertCollectionCount:
		if err := needCollection(); err != nil {
			return err
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for collection_count", index)
		}
	case AssertStats:
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for stats", index)
		}
	case AssertChanges:
		if a.Collection != "" {
			if err := needCollection(); err != nil {
				return err
			}
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for changes", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
