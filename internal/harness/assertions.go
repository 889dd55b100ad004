package harness

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/Punitjadhav07/Hack-build/internal/model"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		n := 0
		for _, event := range e.Trace {
			if event.Type == "invocation" {
				n++
				fmt.Fprintf(&buf, "  [%d] %s %s\n", n, event.Action, describe(event.Args))
			}
		}
	}

	return buf.String()
}

// assertTraceContains checks if the trace contains an invocation matching
// the specified action and args (subset match).
func assertTraceContains(trace []TraceEvent, assertion Assertion) error {
	expected := normalize(assertion.Args)
	for _, event := range trace {
		if event.Type == "invocation" && event.Action == assertion.Action {
			if expected == nil || matchSubset(event.Args, expected) {
				return nil
			}
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("action %s with args %s", assertion.Action, describe(expected)),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks if actions appear in the specified order.
// Actions don't need to be consecutive (intervening actions are allowed).
func assertTraceOrder(trace []TraceEvent, assertion Assertion) error {
	positions := make(map[string]int)
	pos := 0
	for _, event := range trace {
		if event.Type != "invocation" {
			continue
		}
		pos++
		if positions[event.Action] == 0 {
			positions[event.Action] = pos
		}
	}

	for _, action := range assertion.Actions {
		if positions[action] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all actions present: %v", assertion.Actions),
				Actual:   fmt.Sprintf("missing action: %s", action),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(assertion.Actions); i++ {
		prev := assertion.Actions[i-1]
		curr := assertion.Actions[i]

		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("actions in order: %v", assertion.Actions),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}

	return nil
}

// assertTraceCount checks if the action appears exactly the specified number of times.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Type == "invocation" && event.Action == assertion.Action {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, assertion.Action),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}

	return nil
}

// items returns the items of a collection in their JSON form. Stats and
// files are single objects and yield one item.
func items(rec model.Record, name string) []any {
	col, _ := model.ParseCollection(name)
	switch v := normalize(rec.Part(col)).(type) {
	case []any:
		return v
	case nil:
		return nil
	default:
		return []any{v}
	}
}

// assertFinalState checks that exactly one item of the collection matches
// where, and that it has the expected fields (subset semantics).
func assertFinalState(rec model.Record, assertion Assertion) error {
	where := normalize(assertion.Where)

	var matched []any
	for _, item := range items(rec, assertion.Collection) {
		if where == nil || matchSubset(item, where) {
			matched = append(matched, item)
		}
	}

	whereDesc := formatWhereClause(assertion.Where)
	switch len(matched) {
	case 0:
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("item in %s where %s", assertion.Collection, whereDesc),
			Actual:   "item not found",
		}
	case 1:
	default:
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("exactly one item in %s where %s", assertion.Collection, whereDesc),
			Actual:   fmt.Sprintf("%d items matched (assertion is ambiguous)", len(matched)),
		}
	}

	expected := normalize(assertion.Expect)
	if !matchSubset(matched[0], expected) {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("item in %s where %s to contain %s", assertion.Collection, whereDesc, describe(expected)),
			Actual:   describe(matched[0]),
		}
	}
	return nil
}

// assertCollectionCount checks the number of items in a list collection.
// Files counts badges and documents together.
func assertCollectionCount(rec model.Record, assertion Assertion) error {
	var count int
	switch assertion.Collection {
	case string(model.CollectionFiles):
		count = len(rec.Files.Badges) + len(rec.Files.Documents)
	case string(model.CollectionStats):
		return fmt.Errorf("collection_count: stats is not a list")
	default:
		count = len(items(rec, assertion.Collection))
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertCollectionCount,
			Expected: fmt.Sprintf("%d items in %s", assertion.Count, assertion.Collection),
			Actual:   fmt.Sprintf("%d items", count),
		}
	}
	return nil
}

// assertStats checks the stored stats counters.
func assertStats(rec model.Record, assertion Assertion) error {
	actual := normalize(rec.Stats)
	expected := normalize(assertion.Expect)
	if !matchSubset(actual, expected) {
		return &AssertionError{
			Type:     AssertStats,
			Expected: fmt.Sprintf("stats to contain %s", describe(expected)),
			Actual:   describe(actual),
		}
	}
	return nil
}

// assertChanges counts broadcast changes, optionally only those touching a
// collection.
func assertChanges(changes []ChangeEvent, assertion Assertion) error {
	count := 0
	for _, c := range changes {
		if assertion.Collection == "" || touches(c, assertion.Collection) {
			count++
		}
	}

	if count != assertion.Count {
		what := "changes"
		if assertion.Collection != "" {
			what = fmt.Sprintf("changes touching %s", assertion.Collection)
		}
		return &AssertionError{
			Type:     AssertChanges,
			Expected: fmt.Sprintf("%d %s", assertion.Count, what),
			Actual:   fmt.Sprintf("%d %s", count, what),
		}
	}
	return nil
}

func touches(c ChangeEvent, name string) bool {
	for _, col := range c.Collections {
		if string(col) == name {
			return true
		}
	}
	return false
}

// formatWhereClause creates a human-readable description of where conditions.
func formatWhereClause(where map[string]any) string {
	if len(where) == 0 {
		return "(no conditions)"
	}

	keys := make([]string, 0, len(where))
	for k := range where {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, where[k]))
	}
	return strings.Join(parts, " AND ")
}

// matchSubset reports whether actual contains expected. Objects match when
// every expected key matches; extra keys in actual are ignored. Everything
// else must be equal. Both sides must be JSON-normalized.
func matchSubset(actual, expected any) bool {
	expMap, ok := expected.(map[string]any)
	if !ok {
		return reflect.DeepEqual(actual, expected)
	}

	actMap, ok := actual.(map[string]any)
	if !ok {
		return false
	}
	for key, expectedVal := range expMap {
		actualVal, exists := actMap[key]
		if !exists {
			return false
		}
		if !matchSubset(actualVal, expectedVal) {
			return false
		}
	}
	return true
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, assertion)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		case AssertFinalState:
			err = assertFinalState(result.Record, assertion)
		case AssertCollectionCount:
			err = assertCollectionCount(result.Record, assertion)
		case AssertStats:
			err = assertStats(result.Record, assertion)
		case AssertChanges:
			err = assertChanges(result.Changes, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
