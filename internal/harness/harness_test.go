package harness

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Punitjadhav07/Hack-build/internal/errdef"
	"github.com/Punitjadhav07/Hack-build/internal/model"
)

func hackNight() map[string]any {
	return map[string]any{"id": 10, "title": "Hack Night", "capacity": 30}
}

func TestRun_MinimalScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "minimal",
		Description: "Minimal test scenario",
		Flow: []FlowStep{
			{Invoke: "event.add", Args: hackNight()},
		},
		Assertions: []Assertion{
			{Type: AssertTraceContains, Action: "event.add"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)

	require.Len(t, result.Trace, 2)
	assert.Equal(t, "invocation", result.Trace[0].Type)
	assert.Equal(t, int64(1), result.Trace[0].Seq)
	assert.Equal(t, "completion", result.Trace[1].Type)
	assert.Equal(t, CaseSuccess, result.Trace[1].OutputCase)
	assert.Equal(t, int64(2), result.Trace[1].Seq)

	require.Len(t, result.Record.Events, 1)
	assert.Equal(t, model.StatusDraft, result.Record.Events[0].Status)
}

func TestRun_CompletionCarriesResult(t *testing.T) {
	scenario := &Scenario{
		Name:        "result",
		Description: "add returns the stored event",
		Flow: []FlowStep{
			{
				Invoke: "event.add",
				Args:   map[string]any{"title": "Untitled"},
				Expect: &ExpectClause{Case: CaseSuccess, Result: map[string]any{"id": 1, "status": "draft"}},
			},
		},
		Assertions: []Assertion{{Type: AssertChanges, Count: 1}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)

	got, ok := result.Trace[1].Result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1.0, got["id"], "generated ids are sequential")
	assert.Equal(t, "Untitled", got["title"])
}

func TestRun_ExpectMismatchIsReported(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "an unknown role is rejected, not accepted",
		Flow: []FlowStep{
			{Invoke: "user.add", Args: map[string]any{"name": "Ravi", "role": "owner"}},
		},
		Assertions: []Assertion{{Type: AssertCollectionCount, Collection: "users", Count: 0}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "flow step 0 (user.add): expected case Success, got BadRequest", result.Errors[0])

	assert.Equal(t, CaseBadRequest, result.Trace[1].OutputCase)
	assert.Contains(t, result.Trace[1].Error, "unknown role")
}

func TestRun_ResultMismatchIsReported(t *testing.T) {
	scenario := &Scenario{
		Name:        "result_mismatch",
		Description: "first registration is created",
		Setup:       []ActionStep{{Action: "event.add", Args: hackNight()}},
		Flow: []FlowStep{
			{
				Invoke: "register",
				Args:   map[string]any{"userId": 5, "eventId": 10},
				Expect: &ExpectClause{Case: CaseSuccess, Result: map[string]any{"created": false}},
			},
		},
		Assertions: []Assertion{{Type: AssertTraceCount, Action: "register", Count: 1}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, `flow step 0 (register): result {"created":true} does not contain {"created":false}`, result.Errors[0])
}

func TestRun_SetupFailureAborts(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad_setup",
		Description: "setup must succeed",
		Setup: []ActionStep{
			{Action: "feedback.add", Args: map[string]any{"eventId": 1, "rating": 9}},
		},
		Flow:       []FlowStep{{Invoke: "stats.recompute"}},
		Assertions: []Assertion{{Type: AssertChanges, Count: 1}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setup step 0 (feedback.add): completed with BadRequest")
}

func TestRun_BadArgsAbort(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad_args",
		Description: "unknown argument fields fail the run",
		Flow: []FlowStep{
			{Invoke: "event.add", Args: map[string]any{"titel": "typo"}},
		},
		Assertions: []Assertion{{Type: AssertChanges, Count: 0}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBadArgs)
	assert.Contains(t, err.Error(), "flow step 0 (event.add)")
}

func TestRun_SeedIsNotCountedAsChange(t *testing.T) {
	scenario := &Scenario{
		Name:        "seeded",
		Description: "seed then recompute",
		Seed:        true,
		Flow:        []FlowStep{{Invoke: "stats.recompute"}},
		Assertions: []Assertion{
			{Type: AssertCollectionCount, Collection: "events", Count: 3},
			{Type: AssertCollectionCount, Collection: "feedback", Count: 4},
			{Type: AssertStats, Expect: map[string]any{"totalEvents": 3}},
			{Type: AssertChanges, Count: 1},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
}

func TestRun_StoreLoadAndMigrate(t *testing.T) {
	scenario := &Scenario{
		Name:        "migrate",
		Description: "a record written by an older build is migrated",
		Setup: []ActionStep{
			{Action: "store.load", Args: map[string]any{"record": map[string]any{
				"events": []any{
					map[string]any{"id": 1, "title": "Old Meetup", "status": "live", "capacity": "80"},
					map[string]any{"id": 2, "title": model.LegacyEventTitle, "status": "completed"},
				},
			}}},
		},
		Flow: []FlowStep{
			{Invoke: "store.migrate", Expect: &ExpectClause{Case: CaseSuccess, Result: map[string]any{"changed": true}}},
			{Invoke: "store.migrate", Expect: &ExpectClause{Case: CaseSuccess, Result: map[string]any{"changed": false}}},
		},
		Assertions: []Assertion{
			{Type: AssertFinalState, Collection: "events", Where: map[string]any{"id": 1},
				Expect: map[string]any{"status": "published", "capacity": 80, "location": "TBD"}},
			{Type: AssertCollectionCount, Collection: "events", Count: 1},
			{Type: AssertChanges, Count: 1},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
}

func TestRun_TicketScan(t *testing.T) {
	notJSON := "not json"
	scenario := &Scenario{
		Name:        "tickets",
		Description: "a registered holder scans valid, others do not",
		Setup: []ActionStep{
			{Action: "event.add", Args: hackNight()},
			{Action: "register", Args: map[string]any{"userId": 5, "eventId": 10}},
		},
		Flow: []FlowStep{
			{
				Invoke: "ticket.scan",
				Args:   map[string]any{"eventId": 10, "userId": 5, "userName": "Asha"},
				Expect: &ExpectClause{Case: CaseSuccess, Result: map[string]any{
					"valid":        true,
					"message":      "Valid user: Asha (ID: 5)",
					"eventTitle":   "Hack Night",
					"eventDetails": map[string]any{"id": 10},
				}},
			},
			{
				Invoke: "ticket.scan",
				Args:   map[string]any{"eventId": 10, "userId": 6, "userName": "Ben"},
				Expect: &ExpectClause{Case: CaseSuccess, Result: map[string]any{"valid": false, "userId": 6}},
			},
			{
				Invoke: "ticket.scan",
				Args:   map[string]any{"text": notJSON},
				Expect: &ExpectClause{Case: CaseSuccess, Result: map[string]any{"valid": false, "eventTitle": "Unknown"}},
			},
		},
		Assertions: []Assertion{
			{Type: AssertTraceCount, Action: "ticket.scan", Count: 3},
			{Type: AssertChanges, Count: 0},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
}

func TestRun_AssertionFailureFailsResult(t *testing.T) {
	scenario := &Scenario{
		Name:        "assertion_fail",
		Description: "a wrong count fails the run",
		Flow:        []FlowStep{{Invoke: "event.add", Args: hackNight()}},
		Assertions: []Assertion{
			{Type: AssertTraceCount, Action: "event.add", Count: 2},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Assertion failed: trace_count")
}

func TestRun_FreshStorePerRun(t *testing.T) {
	scenario := &Scenario{
		Name:        "fresh",
		Description: "each run starts from an empty store",
		Flow:        []FlowStep{{Invoke: "event.add", Args: hackNight()}},
		Assertions:  []Assertion{{Type: AssertCollectionCount, Collection: "events", Count: 1}},
	}

	for i := 0; i < 3; i++ {
		result, err := Run(scenario)
		require.NoError(t, err)
		assert.True(t, result.Pass, "run %d: %v", i, result.Errors)
	}
}

func TestRun_Deterministic(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/approval_flow.yaml")
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	a, err := NewSnapshot(scenario.Name, first).Marshal()
	require.NoError(t, err)
	b, err := NewSnapshot(scenario.Name, second).Marshal()
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.Equal(t, first.Record, second.Record)
}

func TestOutputCase(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, CaseSuccess},
		{errdef.NewBadRequest("x"), CaseBadRequest},
		{errdef.NewNotFound("x"), CaseNotFound},
		{errdef.NewDuplicated("x"), CaseDuplicated},
		{errdef.NewUnauthorized("x"), CaseUnauthorized},
		{fmt.Errorf("wrapped: %w", errdef.NewConflict("x")), CaseConflict},
		{errors.New("disk full"), CaseError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputCase(tt.err), "%v", tt.err)
	}
}

func TestResult_AddError(t *testing.T) {
	result := NewResult()
	assert.True(t, result.Pass)

	result.AddError("boom")
	assert.False(t, result.Pass)
	assert.Equal(t, []string{"boom"}, result.Errors)
}
