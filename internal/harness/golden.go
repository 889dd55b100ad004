package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/Punitjadhav07/Hack-build/internal/model"
)

// Snapshot is the golden form of a run: the trace without results, the
// changes broadcast during the flow and a summary of the final record.
// Serialized with model.MarshalCanonical for byte-stable comparison.
type Snapshot struct {
	ScenarioName string          `json:"scenario_name"`
	Trace        []snapshotEvent `json:"trace"`
	Changes      []ChangeEvent   `json:"changes"`
	Stats        model.Stats     `json:"stats"`

	// Counts is the number of items per list collection. Files counts
	// badges and documents together.
	Counts map[string]int `json:"counts"`
}

type snapshotEvent struct {
	Type       string `json:"type"`
	Seq        int64  `json:"seq"`
	Action     string `json:"action,omitempty"`
	Args       any    `json:"args,omitempty"`
	OutputCase string `json:"output_case,omitempty"`
}

// NewSnapshot builds the snapshot of a result.
func NewSnapshot(scenarioName string, result *Result) Snapshot {
	s := Snapshot{
		ScenarioName: scenarioName,
		Trace:        make([]snapshotEvent, 0, len(result.Trace)),
		Changes:      make([]ChangeEvent, 0, len(result.Changes)),
		Stats:        result.Record.Stats,
		Counts:       map[string]int{},
	}
	for _, event := range result.Trace {
		s.Trace = append(s.Trace, snapshotEvent{
			Type:       event.Type,
			Seq:        event.Seq,
			Action:     event.Action,
			Args:       event.Args,
			OutputCase: event.OutputCase,
		})
	}
	for _, c := range result.Changes {
		if c.Collections == nil {
			c.Collections = []model.Collection{}
		}
		s.Changes = append(s.Changes, c)
	}

	rec := result.Record
	s.Counts[string(model.CollectionEvents)] = len(rec.Events)
	s.Counts[string(model.CollectionApprovals)] = len(rec.Approvals)
	s.Counts[string(model.CollectionUsers)] = len(rec.Users)
	s.Counts[string(model.CollectionFiles)] = len(rec.Files.Badges) + len(rec.Files.Documents)
	s.Counts[string(model.CollectionNotifications)] = len(rec.Notifications)
	s.Counts[string(model.CollectionRegistrations)] = len(rec.Registrations)
	s.Counts[string(model.CollectionReports)] = len(rec.Reports)
	s.Counts[string(model.CollectionFeedback)] = len(rec.Feedback)
	return s
}

// Marshal encodes the snapshot as canonical JSON.
func (s Snapshot) Marshal() ([]byte, error) {
	return model.MarshalCanonical(s)
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if the scenario cannot run. Failed expectations and
// assertions fail t; a snapshot mismatch fails t via goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Error(msg)
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an existing result against its golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := NewSnapshot(scenarioName, result).Marshal()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
