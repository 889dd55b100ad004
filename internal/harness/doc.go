// Package harness runs store scenarios: YAML files that drive engine commands
// against a fresh in-memory store and assert on the trace, the final record
// and the changes broadcast along the way.
//
// # Scenario Format
//
//	name: scenario_name
//	description: "What this scenario checks"
//	seed: false            # run store.seed before setup
//	setup:
//	  - action: event.add
//	    args: { id: 10, title: "Hack Night" }
//	flow:
//	  - invoke: event.status
//	    args: { id: 10, status: published }
//	    expect:
//	      case: Success
//	assertions:
//	  - type: trace_count
//	    action: event.status
//	    count: 1
//	  - type: final_state
//	    collection: events
//	    where: { id: 10 }
//	    expect: { status: published }
//
// # Actions
//
// Actions are named <area>.<verb> (event.add, approval.resolve,
// user.ban, auth.signup, ticket.scan, ...); see Actions for the full list.
// Arguments use the JSON field names of the store record. Setup steps must
// succeed; flow steps are checked against their expect clause, which defaults
// to case Success.
//
// Output cases are Success or the kind of the returned error: BadRequest,
// NotFound, Duplicated, Unauthorized, Conflict, Error.
//
// # Assertion Types
//
//   - trace_contains: an invocation of action with matching args (subset)
//   - trace_order: actions invoked in the given order
//   - trace_count: action invoked exactly count times
//   - final_state: an item of collection matching where has the expect fields
//   - collection_count: collection has exactly count items
//   - stats: the stored stats have the expect fields
//   - changes: exactly count changes were broadcast during the flow, or
//     touched collection when one is named
//
// # Deterministic Testing
//
// Every run uses a fresh ":memory:" store, a fixed clock at
// testutil.DefaultTime and sequential ids starting at 1, so traces and
// records are identical across runs and can be compared with golden files.
package harness
