package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/Punitjadhav07/Hack-build/internal/auth"
	"github.com/Punitjadhav07/Hack-build/internal/engine"
	"github.com/Punitjadhav07/Hack-build/internal/model"
	"github.com/Punitjadhav07/Hack-build/internal/ticket"
)

// action runs one scenario step. The returned value is recorded as the
// completion result.
type action func(ctx context.Context, h *Harness, args map[string]any) (any, error)

type idArgs struct {
	ID model.ID `json:"id"`
}

type eventUpdateArgs struct {
	ID          model.ID           `json:"id"`
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Department  *string            `json:"department"`
	Date        *string            `json:"date"`
	Time        *string            `json:"time"`
	Location    *string            `json:"location"`
	Type        *string            `json:"type"`
	Status      *model.EventStatus `json:"status"`
	Capacity    *int               `json:"capacity"`
}

type statusArgs struct {
	ID     model.ID          `json:"id"`
	Status model.EventStatus `json:"status"`
}

type resolveArgs struct {
	ID       model.ID `json:"id"`
	Approved bool     `json:"approved"`
}

type reportArgs struct {
	UserID model.ID `json:"userId"`
	Reason string   `json:"reason"`
}

type registerArgs struct {
	UserID  model.ID `json:"userId"`
	EventID model.ID `json:"eventId"`
}

type signupArgs struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginArgs struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

type scanArgs struct {
	Text     *string  `json:"text"`
	EventID  model.ID `json:"eventId"`
	UserID   model.ID `json:"userId"`
	UserName string   `json:"userName"`
}

type loadArgs struct {
	Record json.RawMessage `json:"record"`
	Raw    *string         `json:"raw"`
}

// errBadArgs marks arguments that do not fit the action. It fails the run
// instead of being reported as an output case.
var errBadArgs = errors.New("bad args")

func decodeArgs[T any](args map[string]any) (T, error) {
	var out T
	if args == nil {
		args = map[string]any{}
	}
	data, err := json.Marshal(args)
	if err != nil {
		return out, fmt.Errorf("%w: %v", errBadArgs, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("%w: %v", errBadArgs, err)
	}
	return out, nil
}

// withArgs adapts a typed step to an action.
func withArgs[T any](fn func(ctx context.Context, h *Harness, a T) (any, error)) action {
	return func(ctx context.Context, h *Harness, args map[string]any) (any, error) {
		a, err := decodeArgs[T](args)
		if err != nil {
			return nil, err
		}
		return fn(ctx, h, a)
	}
}

// noResult drops the record returned by engine commands.
func noResult(_ model.Record, err error) (any, error) {
	return nil, err
}

var actions = map[string]action{
	"event.add": withArgs(func(ctx context.Context, h *Harness, ev model.Event) (any, error) {
		return h.engine.AddEvent(ctx, ev)
	}),
	"event.update": withArgs(func(ctx context.Context, h *Harness, a eventUpdateArgs) (any, error) {
		return noResult(h.engine.UpdateEvent(ctx, a.ID, engine.EventPatch{
			Title:       a.Title,
			Description: a.Description,
			Department:  a.Department,
			Date:        a.Date,
			Time:        a.Time,
			Location:    a.Location,
			Type:        a.Type,
			Status:      a.Status,
			Capacity:    a.Capacity,
		}))
	}),
	"event.delete": withArgs(func(ctx context.Context, h *Harness, a idArgs) (any, error) {
		return noResult(h.engine.DeleteEvent(ctx, a.ID))
	}),
	"event.status": withArgs(func(ctx context.Context, h *Harness, a statusArgs) (any, error) {
		return noResult(h.engine.SetEventStatus(ctx, a.ID, a.Status))
	}),

	"approval.queue": withArgs(func(ctx context.Context, h *Harness, ap model.Approval) (any, error) {
		return h.engine.QueueApproval(ctx, ap)
	}),
	"approval.resolve": withArgs(func(ctx context.Context, h *Harness, a resolveArgs) (any, error) {
		return noResult(h.engine.ResolveApproval(ctx, a.ID, a.Approved))
	}),

	"user.add": withArgs(func(ctx context.Context, h *Harness, u model.User) (any, error) {
		return h.engine.AddUser(ctx, u)
	}),
	"user.ban": withArgs(func(ctx context.Context, h *Harness, a idArgs) (any, error) {
		return noResult(h.engine.BanUser(ctx, a.ID))
	}),
	"user.unban": withArgs(func(ctx context.Context, h *Harness, a idArgs) (any, error) {
		return noResult(h.engine.UnbanUser(ctx, a.ID))
	}),
	"user.report": withArgs(func(ctx context.Context, h *Harness, a reportArgs) (any, error) {
		return h.engine.ReportUser(ctx, a.UserID, a.Reason)
	}),
	"user.import": func(ctx context.Context, h *Harness, _ map[string]any) (any, error) {
		added, err := h.engine.ImportUsersFromAuth(ctx)
		return map[string]any{"added": added}, err
	},

	"register": withArgs(func(ctx context.Context, h *Harness, a registerArgs) (any, error) {
		created, err := h.engine.RegisterForEvent(ctx, a.UserID, a.EventID)
		return map[string]any{"created": created}, err
	}),

	"feedback.add": withArgs(func(ctx context.Context, h *Harness, fb model.Feedback) (any, error) {
		return h.engine.AddFeedback(ctx, fb)
	}),

	"notify.send": withArgs(func(ctx context.Context, h *Harness, n model.Notification) (any, error) {
		return h.engine.AddNotification(ctx, n)
	}),
	"notify.read": withArgs(func(ctx context.Context, h *Harness, a idArgs) (any, error) {
		return noResult(h.engine.MarkNotificationRead(ctx, a.ID))
	}),
	"notify.read_all": func(ctx context.Context, h *Harness, _ map[string]any) (any, error) {
		return noResult(h.engine.MarkAllNotificationsRead(ctx))
	},
	"notify.delete": withArgs(func(ctx context.Context, h *Harness, a idArgs) (any, error) {
		return noResult(h.engine.DeleteNotification(ctx, a.ID))
	}),

	"files.badge": withArgs(func(ctx context.Context, h *Harness, f model.FileEntry) (any, error) {
		return noResult(h.engine.AddBadge(ctx, f))
	}),
	"files.document": withArgs(func(ctx context.Context, h *Harness, f model.FileEntry) (any, error) {
		return noResult(h.engine.AddDocument(ctx, f))
	}),

	"stats.recompute": func(ctx context.Context, h *Harness, _ map[string]any) (any, error) {
		return h.engine.RecomputeStats(ctx)
	},

	"store.seed": func(ctx context.Context, h *Harness, _ map[string]any) (any, error) {
		seeded, err := h.engine.SeedIfEmpty(ctx)
		return map[string]any{"seeded": seeded}, err
	},
	"store.migrate": func(ctx context.Context, h *Harness, _ map[string]any) (any, error) {
		changed, err := h.engine.MigrateStore(ctx)
		return map[string]any{"changed": changed}, err
	},
	// store.load writes a record straight to the store, bypassing the engine,
	// as another process or an older build would.
	"store.load": withArgs(func(ctx context.Context, h *Harness, a loadArgs) (any, error) {
		value := string(a.Record)
		if a.Raw != nil {
			value = *a.Raw
		}
		_, err := h.store.Put(ctx, model.StoreKey, value)
		return nil, err
	}),

	"auth.signup": withArgs(func(ctx context.Context, h *Harness, a signupArgs) (any, error) {
		return h.auth.Signup(ctx, auth.SignupForm{
			Name:            a.Name,
			Email:           a.Email,
			Password:        a.Password,
			ConfirmPassword: a.ConfirmPassword,
		})
	}),
	"auth.login": withArgs(func(ctx context.Context, h *Harness, a loginArgs) (any, error) {
		return h.auth.Login(ctx, auth.LoginForm{Email: a.Email, Password: a.Password, Role: a.Role})
	}),
	"auth.logout": func(ctx context.Context, h *Harness, _ map[string]any) (any, error) {
		return nil, h.auth.Logout(ctx)
	},

	// ticket.scan scans text when given, otherwise a freshly issued ticket for
	// the event and holder.
	"ticket.scan": withArgs(func(ctx context.Context, h *Harness, a scanArgs) (any, error) {
		rec := h.engine.Read(ctx)
		text := ""
		if a.Text != nil {
			text = *a.Text
		} else {
			ev, _ := h.engine.GetEventByID(ctx, a.EventID)
			ev.ID = a.EventID
			encoded, err := ticket.Issue(ev, model.Session{ID: a.UserID, Name: a.UserName}, h.clock.Now()).Encode()
			if err != nil {
				return nil, err
			}
			text = string(encoded)
		}
		return ticket.Scan(rec, text), nil
	}),
}

// Actions lists the action names scenarios may use, sorted.
func Actions() []string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
