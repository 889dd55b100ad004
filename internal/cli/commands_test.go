package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Punitjadhav07/Hack-build/internal/model"
	"github.com/Punitjadhav07/Hack-build/internal/testutil"
	"github.com/Punitjadhav07/Hack-build/internal/ticket"
	"github.com/Punitjadhav07/Hack-build/internal/views"
)

// cliEnv runs commands against one SQLite file with a shared fixed clock and
// id sequence, so ids keep counting across invocations.
type cliEnv struct {
	t     *testing.T
	db    string
	clock *testutil.FixedClock
	ids   *testutil.SequenceIDs
	stdin string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	return &cliEnv{
		t:     t,
		db:    filepath.Join(t.TempDir(), "eventra.db"),
		clock: testutil.NewFixedClock(time.Time{}),
		ids:   testutil.NewSequenceIDs(0),
	}
}

func (e *cliEnv) run(args ...string) (string, error) {
	e.t.Helper()
	opts := &RootOptions{Clock: e.clock, IDs: e.ids}
	cmd := newRootCommand(opts)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(e.stdin))
	cmd.SetArgs(append([]string{"--db", e.db, "--backend", "sqlite"}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func (e *cliEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, "eventra %s", strings.Join(args, " "))
	return out
}

// runJSON runs a command with --format json and decodes the response data
// into v.
func (e *cliEnv) runJSON(v any, args ...string) {
	e.t.Helper()
	out := e.mustRun(append([]string{"--format", "json"}, args...)...)

	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(e.t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	require.Equal(e.t, "ok", resp.Status)
	if v != nil {
		require.NoError(e.t, json.Unmarshal(resp.Data, v), "data: %s", resp.Data)
	}
}

func (e *cliEnv) record() model.Record {
	e.t.Helper()
	var rec model.Record
	e.runJSON(&rec, "show")
	return rec
}

func TestSeedAndStats(t *testing.T) {
	env := newCLIEnv(t)

	var seeded map[string]bool
	env.runJSON(&seeded, "seed")
	assert.True(t, seeded["seeded"])

	env.runJSON(&seeded, "seed")
	assert.False(t, seeded["seeded"], "second seed leaves a non-empty store alone")

	var overview views.AdminOverview
	env.runJSON(&overview, "stats")
	assert.Equal(t, 3, overview.Stats.TotalEvents)
	assert.LessOrEqual(t, len(overview.Notifications), 3)

	out := env.mustRun("stats")
	assert.Contains(t, out, "Events:            3")
}

func TestEventCommands(t *testing.T) {
	env := newCLIEnv(t)

	var ev model.Event
	env.runJSON(&ev, "event", "add", "--title", "Go Workshop", "--date", "2025-03-15",
		"--time", "09:00 AM", "--location", "Lab 2", "--capacity", "10")
	assert.Equal(t, model.ID("1"), ev.ID)
	assert.Equal(t, model.StatusDraft, ev.Status)

	env.runJSON(&ev, "event", "update", "1", "--capacity", "12")
	assert.Equal(t, 12, ev.Capacity)
	assert.Equal(t, "Lab 2", ev.Location, "fields without flags are kept")

	env.mustRun("event", "status", "1", "published")

	_, err := env.run("event", "status", "1", "draft")
	require.Error(t, err, "published cannot go back to draft")
	assert.Equal(t, ErrCodeConflict, ErrorCode(err))

	_, err = env.run("event", "status", "1", "registered")
	require.Error(t, err)
	assert.Equal(t, ErrCodeBadRequest, ErrorCode(err))

	var created map[string]any
	env.runJSON(&created, "register", "u1", "1")
	assert.Equal(t, true, created["created"])
	env.runJSON(&created, "register", "u1", "1")
	assert.Equal(t, false, created["created"])

	var cards []views.Card
	env.runJSON(&cards, "event", "list", "--status", "published")
	require.Len(t, cards, 1)
	assert.Equal(t, 11, cards[0].AvailableSpots)
	assert.Equal(t, "published", cards[0].Status)

	env.runJSON(&cards, "event", "list", "--user", "u1")
	require.Len(t, cards, 1)
	assert.Equal(t, "registered", cards[0].Status)

	env.runJSON(&cards, "event", "list", "--from", "2025-04-01")
	assert.Empty(t, cards)

	env.runJSON(&cards, "event", "list", "--from", "2025-03-01", "--to", "2025-03-15")
	assert.Len(t, cards, 1, "--to covers the whole day")

	out := env.mustRun("event", "list")
	assert.Contains(t, out, "Go Workshop")
	assert.Contains(t, out, "SPOTS")

	env.mustRun("event", "delete", "1")
	rec := env.record()
	assert.Empty(t, rec.Events)
	assert.Equal(t, 0, rec.Stats.TotalEvents)
}

func TestEventImport(t *testing.T) {
	env := newCLIEnv(t)
	path := filepath.Join(t.TempDir(), "events.json")
	src := `{"events": [
		{"title": "Hackathon", "date": "2025-03-20", "status": "published", "capacity": 50},
		{"title": "Career Fair", "date": "2025-03-22"}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	var added []model.Event
	env.runJSON(&added, "event", "import", path)
	require.Len(t, added, 2)
	assert.Equal(t, model.StatusPublished, added[0].Status)
	assert.Equal(t, model.StatusDraft, added[1].Status)

	var items []views.UpcomingItem
	env.runJSON(&items, "upcoming")
	require.Len(t, items, 1, "only published events by default")
	assert.Equal(t, "Hackathon", items[0].Title)

	env.runJSON(&items, "upcoming", "--all", "--limit", "0")
	assert.Len(t, items, 2)

	_, err := env.run("event", "import", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCalendar(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("event", "add", "--title", "Robotics", "--date", "2025-03-15")

	var view calendarView
	env.runJSON(&view, "calendar", "--month", "3", "--year", "2025")
	assert.Equal(t, 2025, view.Year)
	assert.Equal(t, 3, view.Month)
	assert.Zero(t, len(view.Days)%7, "whole weeks")
	assert.Equal(t, "2025-02-23", view.Days[0].Date, "grid starts on the Sunday before the 1st")

	var found bool
	for _, d := range view.Days {
		if d.Date == "2025-03-15" {
			found = true
			assert.Equal(t, []model.ID{"1"}, d.Events)
		}
	}
	assert.True(t, found)
	require.Len(t, view.Events, 1)

	out := env.mustRun("calendar")
	assert.Contains(t, out, "March 2025")
	assert.Contains(t, out, "15*")

	_, err := env.run("calendar", "--month", "13")
	require.Error(t, err)
}

func TestApprovalCommands(t *testing.T) {
	env := newCLIEnv(t)

	env.mustRun("approval", "queue", "--title", "Robotics Expo", "--organizer", "Mechanical", "--capacity", "120")
	env.mustRun("approval", "queue", "--title", "Poetry Slam")

	var pending []model.Approval
	env.runJSON(&pending, "approval", "list")
	require.Len(t, pending, 2)

	env.mustRun("approval", "resolve", "1", "--approve")
	env.mustRun("approval", "resolve", "2", "--reject")

	rec := env.record()
	assert.Empty(t, rec.Approvals)
	assert.Equal(t, 0, rec.Stats.PendingApprovals)
	require.Len(t, rec.Events, 1)
	assert.Equal(t, model.ID("1"), rec.Events[0].ID)
	assert.Equal(t, model.StatusPublished, rec.Events[0].Status)
	assert.Equal(t, "Mechanical", rec.Events[0].Department)

	_, err := env.run("approval", "resolve", "1", "--approve", "--reject")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestUserCommands(t *testing.T) {
	env := newCLIEnv(t)

	env.mustRun("user", "add", "--id", "u1", "--name", "Asha", "--email", "asha@campus.edu")
	env.mustRun("user", "add", "--id", "u2", "--name", "Ravi")
	env.mustRun("user", "ban", "u2")
	env.mustRun("user", "report", "u1", "--reason", "spam")

	var rows []userRow
	env.runJSON(&rows, "user", "list")
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Reports)
	assert.Equal(t, model.UserBanned, rows[1].Status)

	env.runJSON(&rows, "user", "list", "--status", "banned")
	require.Len(t, rows, 1)
	assert.Equal(t, model.ID("u2"), rows[0].ID)

	env.mustRun("user", "unban", "u2")
	rec := env.record()
	assert.Equal(t, model.UserActive, rec.Users[1].Status)
	require.Len(t, rec.Notifications, 1)
	assert.Equal(t, "Report", rec.Notifications[0].Type)

	_, err := env.run("user", "add", "--id", "u1", "--name", "Again")
	require.Error(t, err)
	assert.Equal(t, ErrCodeConflict, ErrorCode(err))
}

func TestSessionAndImport(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run("whoami")
	require.Error(t, err)
	assert.Equal(t, ErrCodeUnauthorized, ErrorCode(err))

	var acc model.Account
	env.runJSON(&acc, "signup", "--name", "Asha", "--email", "asha@campus.edu", "--password", "secret1")
	assert.Equal(t, model.ID("1740819600000"), acc.ID)
	assert.Empty(t, acc.Password, "password is not echoed")

	_, err = env.run("signup", "--name", "Asha", "--email", "asha@campus.edu", "--password", "secret1")
	require.Error(t, err)
	assert.Equal(t, ErrCodeDuplicated, ErrorCode(err))

	_, err = env.run("login", "--email", "asha@campus.edu", "--password", "wrong")
	require.Error(t, err)
	assert.Equal(t, ErrCodeUnauthorized, ErrorCode(err))

	var session model.Session
	env.runJSON(&session, "login", "--email", "asha@campus.edu", "--password", "secret1")
	assert.Equal(t, model.RoleUser, session.Role)

	var me whoami
	env.runJSON(&me, "whoami")
	assert.Equal(t, "Asha", me.Session.Name)
	require.NotNil(t, me.Overview)
	assert.Equal(t, 0, me.Overview.RegisteredEvents)

	var imported map[string]int
	env.runJSON(&imported, "user", "import")
	assert.Equal(t, 1, imported["imported"])
	env.runJSON(&imported, "user", "import")
	assert.Equal(t, 0, imported["imported"])

	env.mustRun("logout")
	_, err = env.run("whoami")
	require.Error(t, err)
}

func TestTicketIssueAndScan(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("event", "add", "--title", "Go Workshop", "--date", "2025-03-15", "--status", "published")
	env.mustRun("signup", "--name", "Asha", "--email", "asha@campus.edu", "--password", "secret1")
	env.mustRun("login", "--email", "asha@campus.edu", "--password", "secret1")
	env.mustRun("register", "1740819600000", "1")

	png := filepath.Join(t.TempDir(), "ticket.png")
	var issued issuedTicket
	env.runJSON(&issued, "ticket", "issue", "1", "--png", png)
	assert.Equal(t, ticket.Marker, issued.Payload.Type)
	assert.Equal(t, model.ID("1740819600000"), issued.Payload.UserID)
	assert.Equal(t, png, issued.PNG)
	info, err := os.Stat(png)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	var res ticket.Result
	env.runJSON(&res, "ticket", "scan", issued.Text)
	assert.True(t, res.Valid)
	assert.Equal(t, "Go Workshop", res.EventTitle)

	env.stdin = issued.Text + "\n"
	env.runJSON(&res, "ticket", "scan", "-")
	assert.True(t, res.Valid, "stdin input is trimmed")

	out, err := env.run("ticket", "scan", "not json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ "+ticket.MsgBadData)

	out = env.mustRun("ticket", "issue", "1", "--user", "u9", "--name", "Guest")
	assert.Contains(t, out, "Go Workshop for Guest (u9)")

	_, err = env.run("ticket", "issue", "404")
	require.Error(t, err)
	assert.Equal(t, ErrCodeNotFound, ErrorCode(err))
}

func TestFeedbackNotifyFiles(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("user", "add", "--id", "u1", "--name", "Asha")

	env.mustRun("feedback", "add", "7", "--user", "u1", "--rating", "5", "--comment", "great")
	env.mustRun("feedback", "add", "7", "--user", "u1", "--rating", "3")
	_, err := env.run("feedback", "add", "7", "--user", "u1", "--rating", "9")
	require.Error(t, err)
	assert.Equal(t, ErrCodeBadRequest, ErrorCode(err))

	var summaries []views.FeedbackSummary
	env.runJSON(&summaries, "feedback", "list", "--event", "7")
	require.Len(t, summaries, 1)
	assert.Equal(t, 2, summaries[0].Count)
	assert.InDelta(t, 4.0, summaries[0].Average, 0.001)
	assert.Equal(t, "Asha", summaries[0].Entries[0].UserName, "name comes from the user record")

	var note model.Notification
	env.runJSON(&note, "notify", "send", "Hall changed", "--title", "Update")
	assert.True(t, note.Unread)
	env.mustRun("notify", "send", "Second")

	var notes []model.Notification
	env.runJSON(&notes, "notify", "list", "--unread")
	require.Len(t, notes, 2)
	assert.Equal(t, "Second", notes[0].Message, "newest first")

	env.mustRun("notify", "read", string(note.ID))
	env.runJSON(&notes, "notify", "list", "--unread")
	assert.Len(t, notes, 1)

	env.mustRun("notify", "read-all")
	env.runJSON(&notes, "notify", "list", "--unread")
	assert.Empty(t, notes)

	env.mustRun("notify", "delete", string(note.ID))
	env.runJSON(&notes, "notify", "list")
	assert.Len(t, notes, 1)

	env.mustRun("files", "add-badge", "winner.png", "--url", "https://example.com/winner.png")
	env.mustRun("files", "add-document", "rules.pdf")
	_, err = env.run("files", "add-badge", " ")
	require.Error(t, err)

	var files model.Files
	env.runJSON(&files, "files", "list")
	assert.Len(t, files.Badges, 1)
	assert.Len(t, files.Documents, 1)
}

func TestShowAndHistory(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("event", "add", "--title", "One")
	env.mustRun("event", "add", "--title", "Two")

	var events []model.Event
	env.runJSON(&events, "show", "--collection", "events")
	assert.Len(t, events, 2)

	_, err := env.run("show", "--collection", "tickets")
	require.Error(t, err)
	assert.Equal(t, ErrCodeBadRequest, ErrorCode(err))

	var entries []historyEntry
	env.runJSON(&entries, "history")
	require.GreaterOrEqual(t, len(entries), 2)
	assert.Equal(t, 2, entries[0].Events, "newest first")
	assert.Greater(t, entries[0].StoreRevision, entries[1].StoreRevision)

	env.runJSON(&entries, "history", "--keep", "1")
	assert.Len(t, entries, 1)
}

func TestStatsRecompute(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("seed")
	env.mustRun("register", "u1", "1")

	var overview views.AdminOverview
	env.runJSON(&overview, "stats", "--recompute")
	assert.Equal(t, 1, overview.Stats.Registrations)
	assert.Equal(t, 3, overview.Stats.TotalEvents)
}
