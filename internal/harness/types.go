package harness

import "github.com/Punitjadhav07/Hack-build/internal/model"

// Output cases reported in completions.
const (
	CaseSuccess      = "Success"
	CaseBadRequest   = "BadRequest"
	CaseNotFound     = "NotFound"
	CaseDuplicated   = "Duplicated"
	CaseUnauthorized = "Unauthorized"
	CaseConflict     = "Conflict"
	CaseError        = "Error"
)

// TraceEvent is one invocation or completion in a scenario run.
type TraceEvent struct {
	Type       string `json:"type"` // "invocation" or "completion"
	Action     string `json:"action,omitempty"`
	Args       any    `json:"args,omitempty"`
	OutputCase string `json:"output_case,omitempty"`
	Result     any    `json:"result,omitempty"`
	Error      string `json:"error,omitempty"`
	Seq        int64  `json:"seq"`
}

// ChangeEvent summarizes one broadcast change.
type ChangeEvent struct {
	Revision    int64              `json:"revision"`
	Collections []model.Collection `json:"collections"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every expect clause and assertion held.
	Pass bool `json:"pass"`

	Trace   []TraceEvent  `json:"trace"`
	Changes []ChangeEvent `json:"changes"`
	Errors  []string      `json:"errors,omitempty"`

	// Record is the store record after the last step.
	Record model.Record `json:"record"`
}

// NewResult creates a passing result.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Trace:   []TraceEvent{},
		Changes: []ChangeEvent{},
		Errors:  []string{},
		Record:  model.DefaultRecord(),
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

func (r *Result) addInvocation(action string, args any, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:   "invocation",
		Action: action,
		Args:   args,
		Seq:    seq,
	})
}

func (r *Result) addCompletion(outputCase string, result any, errMsg string, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:       "completion",
		OutputCase: outputCase,
		Result:     result,
		Error:      errMsg,
		Seq:        seq,
	})
}
