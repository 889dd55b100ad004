package harness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Punitjadhav07/Hack-build/internal/auth"
	"github.com/Punitjadhav07/Hack-build/internal/engine"
	"github.com/Punitjadhav07/Hack-build/internal/errdef"
	"github.com/Punitjadhav07/Hack-build/internal/notify"
	"github.com/Punitjadhav07/Hack-build/internal/store"
	"github.com/Punitjadhav07/Hack-build/internal/testutil"
)

// Harness runs one scenario against a private store.
type Harness struct {
	store  *store.Store
	engine *engine.Engine
	auth   *auth.Service
	clock  *testutil.FixedClock
	logger *slog.Logger

	// seq numbers trace events in the order they happen.
	seq int64
}

// Option configures a run.
type Option func(*runConfig)

type runConfig struct {
	logger *slog.Logger
}

// WithLogger sets the logger for the run and the engine under it.
// Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(c *runConfig) {
		c.logger = l
	}
}

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Open a fresh in-memory store and engine with a fixed clock and
//     sequential ids
//  2. Seed the store when the scenario asks for it
//  3. Execute setup steps, which must all succeed
//  4. Execute flow steps, checking each completion against its expect clause
//  5. Collect the changes broadcast during the flow and the final record
//  6. Evaluate assertions
//
// A failed expectation or assertion is reported in Result.Errors. An error is
// returned only when the scenario cannot run at all.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := runConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	clock := testutil.NewFixedClock(testutil.DefaultTime)
	h := &Harness{
		store: st,
		engine: engine.New(st,
			engine.WithLogger(cfg.logger),
			engine.WithClock(clock),
			engine.WithIDGenerator(testutil.NewSequenceIDs(0)),
		),
		auth: auth.New(st,
			auth.WithLogger(cfg.logger),
			auth.WithNow(clock.Now),
		),
		clock:  clock,
		logger: cfg.logger,
	}

	sub := h.engine.Subscribe()
	defer sub.Close()

	ctx := context.Background()
	result := NewResult()

	if scenario.Seed {
		if _, err := h.engine.SeedIfEmpty(ctx); err != nil {
			return nil, fmt.Errorf("failed to seed store: %w", err)
		}
	}

	if err := h.executeSetup(ctx, scenario.Setup, result); err != nil {
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}
	drain(sub)

	if err := h.executeFlow(ctx, scenario.Flow, result); err != nil {
		return nil, fmt.Errorf("failed to execute flow: %w", err)
	}
	for _, c := range drain(sub) {
		result.Changes = append(result.Changes, ChangeEvent{
			Revision:    c.Revision,
			Collections: c.Collections,
		})
	}

	result.Record = h.engine.Read(ctx)

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

// executeSetup runs all setup steps. Any failure aborts the run.
func (h *Harness) executeSetup(ctx context.Context, setup []ActionStep, result *Result) error {
	for i, step := range setup {
		outputCase, value, err := h.invoke(ctx, step.Action, step.Args, result)
		if err != nil {
			return fmt.Errorf("setup step %d (%s): %w", i, step.Action, err)
		}
		if outputCase != CaseSuccess {
			return fmt.Errorf("setup step %d (%s): completed with %s: %v", i, step.Action, outputCase, value)
		}
		h.logger.Debug("setup step completed", "step", i, "action", step.Action)
	}
	return nil
}

// executeFlow runs all flow steps and records mismatches with their expect
// clauses as result errors.
func (h *Harness) executeFlow(ctx context.Context, flow []FlowStep, result *Result) error {
	for i, step := range flow {
		outputCase, value, err := h.invoke(ctx, step.Invoke, step.Args, result)
		if err != nil {
			return fmt.Errorf("flow step %d (%s): %w", i, step.Invoke, err)
		}

		expected := CaseSuccess
		if step.Expect != nil {
			expected = step.Expect.Case
		}
		if outputCase != expected {
			result.AddError(fmt.Sprintf("flow step %d (%s): expected case %s, got %s",
				i, step.Invoke, expected, outputCase))
		} else if step.Expect != nil && len(step.Expect.Result) > 0 {
			if !matchSubset(value, normalize(step.Expect.Result)) {
				result.AddError(fmt.Sprintf("flow step %d (%s): result %s does not contain %s",
					i, step.Invoke, describe(value), describe(normalize(step.Expect.Result))))
			}
		}

		h.logger.Debug("flow step completed",
			"step", i,
			"action", step.Invoke,
			"expected_case", expected,
			"actual_case", outputCase)
	}
	return nil
}

// invoke runs one action and appends its invocation and completion to the
// trace. It returns the output case and the JSON-normalized result. The error
// is non-nil only when the arguments do not fit the action.
func (h *Harness) invoke(ctx context.Context, name string, args map[string]any, result *Result) (string, any, error) {
	run, ok := actions[name]
	if !ok {
		return "", nil, fmt.Errorf("unknown action %q", name)
	}

	h.seq++
	result.addInvocation(name, normalize(args), h.seq)

	value, err := run(ctx, h, args)
	if errors.Is(err, errBadArgs) {
		return "", nil, err
	}

	h.seq++
	outputCase := OutputCase(err)
	if err != nil {
		result.addCompletion(outputCase, nil, err.Error(), h.seq)
		return outputCase, err.Error(), nil
	}
	normalized := normalize(value)
	result.addCompletion(outputCase, normalized, "", h.seq)
	return outputCase, normalized, nil
}

// OutputCase maps an action error to its output case.
func OutputCase(err error) string {
	if err == nil {
		return CaseSuccess
	}
	switch errdef.Kind(err) {
	case "bad_request":
		return CaseBadRequest
	case "not_found":
		return CaseNotFound
	case "duplicated":
		return CaseDuplicated
	case "unauthorized":
		return CaseUnauthorized
	case "conflict":
		return CaseConflict
	default:
		return CaseError
	}
}

func drain(sub *notify.Subscription) []notify.Change {
	var out []notify.Change
	for {
		c, ok := sub.TryNext()
		if !ok {
			return out
		}
		out = append(out, c)
	}
}

// normalize converts v to the generic form encoding/json decodes into, so
// YAML input and Go results compare equal when their JSON is equal.
func normalize(v any) any {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return string(data)
	}
	return out
}

func describe(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
