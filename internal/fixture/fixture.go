package fixture

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/Punitjadhav07/Hack-build/internal/model"
)

//go:embed schema.cue
var schemaCUE string

//go:embed seed.cue
var seedCUE string

// TimestampLayout matches JavaScript's Date.prototype.toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Error reports an invalid fixture with its CUE position when known.
type Error struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Seed is the demonstration data written into an empty store.
type Seed struct {
	Events        []model.Event
	Feedback      []model.Feedback
	Notifications []model.Notification
}

type seedEvent struct {
	model.Event
	Key string `json:"key"`
}

type seedFeedback struct {
	Event       string   `json:"event"`
	UserID      model.ID `json:"userId"`
	UserName    string   `json:"userName"`
	Rating      int      `json:"rating"`
	Comment     string   `json:"comment"`
	SubmittedAt string   `json:"submittedAt"`
}

type seedNotification struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Unread   bool   `json:"unread"`
	Age      int    `json:"age"`
}

type seedFile struct {
	Events        []seedEvent        `json:"events"`
	Feedback      []seedFeedback     `json:"feedback"`
	Notifications []seedNotification `json:"notifications"`
}

// LoadSeed builds the demonstration seed. Ids come from newID in record
// order (events, then feedback, then notifications); notification timestamps
// are relative to now.
func LoadSeed(now time.Time, newID func() model.ID) (Seed, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(schemaCUE+"\n"+seedCUE, cue.Filename("seed.cue"))
	if err := v.Err(); err != nil {
		return Seed{}, formatCUEError(err)
	}

	seedVal := v.LookupPath(cue.ParsePath("seed"))
	if err := seedVal.Validate(cue.Concrete(true)); err != nil {
		return Seed{}, formatCUEError(err)
	}

	var file seedFile
	if err := decode(seedVal, &file); err != nil {
		return Seed{}, err
	}

	seed := Seed{
		Events:        make([]model.Event, 0, len(file.Events)),
		Feedback:      make([]model.Feedback, 0, len(file.Feedback)),
		Notifications: make([]model.Notification, 0, len(file.Notifications)),
	}

	byKey := make(map[string]model.ID, len(file.Events))
	for _, se := range file.Events {
		ev := se.Event
		ev.ID = newID()
		byKey[se.Key] = ev.ID
		seed.Events = append(seed.Events, ev)
	}

	for i, sf := range file.Feedback {
		eventID, ok := byKey[sf.Event]
		if !ok {
			return Seed{}, &Error{
				Field:   fmt.Sprintf("seed.feedback[%d].event", i),
				Message: fmt.Sprintf("unknown event key %q", sf.Event),
			}
		}
		seed.Feedback = append(seed.Feedback, model.Feedback{
			ID:          newID(),
			EventID:     eventID,
			UserID:      sf.UserID,
			UserName:    sf.UserName,
			Rating:      sf.Rating,
			Comment:     sf.Comment,
			SubmittedAt: sf.SubmittedAt,
		})
	}

	for _, sn := range file.Notifications {
		ts := now.Add(-time.Duration(sn.Age) * time.Second)
		seed.Notifications = append(seed.Notifications, model.Notification{
			ID:        newID(),
			Title:     sn.Title,
			Message:   sn.Message,
			Type:      sn.Type,
			Category:  sn.Category,
			Unread:    sn.Unread,
			Timestamp: ts.UTC().Format(TimestampLayout),
		})
	}

	return seed, nil
}

// ImportEvents parses a CUE or JSON document of the form
// {events: [...]} and returns the events with schema defaults applied.
// filename is used in error positions only.
func ImportEvents(src []byte, filename string) ([]model.Event, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	doc := ctx.CompileBytes(src, cue.Filename(filename))
	if err := doc.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Import")).Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var file struct {
		Events []model.Event `json:"events"`
	}
	if err := decode(unified, &file); err != nil {
		return nil, err
	}
	if file.Events == nil {
		file.Events = []model.Event{}
	}
	return file.Events, nil
}

// decode exports v as JSON and decodes it, so model types keep their own
// JSON handling (numeric ids in particular).
func decode(v cue.Value, out any) error {
	data, err := v.MarshalJSON()
	if err != nil {
		return formatCUEError(err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode fixture: %w", err)
	}
	return nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &Error{Field: "cue", Message: err.Error()}
	}

	first := errs[0]
	positions := errors.Positions(first)
	if len(positions) > 0 {
		return &Error{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}

	return &Error{Field: "cue", Message: first.Error()}
}
