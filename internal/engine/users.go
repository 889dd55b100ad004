package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/Punitjadhav07/Hack-build/internal/errdef"
	"github.com/Punitjadhav07/Hack-build/internal/model"
)

// defaultReportReason is stored when a report gives no reason.
const defaultReportReason = "Reported by admin"

// AddUser appends u with status active and role user unless given, and sets
// stats.totalUsers.
func (e *Engine) AddUser(ctx context.Context, u model.User) (model.User, error) {
	if u.ID == "" {
		u.ID = e.ids.Generate()
	}
	if u.Status == "" {
		u.Status = model.UserActive
	}
	if u.Role == "" {
		u.Role = model.RoleUser
	}
	if u.Role != model.RoleUser && u.Role != model.RoleAdmin {
		return model.User{}, errdef.NewBadRequest("add user: unknown role %q", u.Role)
	}
	if u.Status != model.UserActive && u.Status != model.UserBanned {
		return model.User{}, errdef.NewBadRequest("add user: unknown status %q", u.Status)
	}

	_, err := e.Update(ctx, func(r *model.Record) error {
		if r.FindUser(u.ID) >= 0 {
			return errdef.NewConflict("add user: id %s already exists", u.ID)
		}
		r.Users = append(r.Users, u)
		r.Stats.TotalUsers = len(r.Users)
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

// BanUser sets the user's status to banned. Other users are untouched.
func (e *Engine) BanUser(ctx context.Context, id model.ID) (model.Record, error) {
	return e.setUserStatus(ctx, id, model.UserBanned)
}

// UnbanUser sets the user's status back to active.
func (e *Engine) UnbanUser(ctx context.Context, id model.ID) (model.Record, error) {
	return e.setUserStatus(ctx, id, model.UserActive)
}

func (e *Engine) setUserStatus(ctx context.Context, id model.ID, status model.UserStatus) (model.Record, error) {
	return e.Update(ctx, func(r *model.Record) error {
		if i := r.FindUser(id); i >= 0 {
			r.Users[i].Status = status
		}
		return nil
	})
}

// ReportUser prepends a report and a "Report" notification for admins.
func (e *Engine) ReportUser(ctx context.Context, userID model.ID, reason string) (model.Report, error) {
	report := model.Report{
		ID:     e.ids.Generate(),
		UserID: userID,
		Reason: reason,
		Time:   e.localeNow(),
	}
	if strings.TrimSpace(report.Reason) == "" {
		report.Reason = defaultReportReason
	}
	note := model.Notification{
		ID:      e.ids.Generate(),
		Type:    "Report",
		Message: fmt.Sprintf("User %s reported: %s", userID, reason),
		Time:    justNow,
	}

	_, err := e.Update(ctx, func(r *model.Record) error {
		r.Reports = append([]model.Report{report}, r.Reports...)
		r.Notifications = append([]model.Notification{note}, r.Notifications...)
		return nil
	})
	if err != nil {
		return model.Report{}, err
	}
	return report, nil
}

// ImportUsersFromAuth merges the signed-up accounts list into users,
// skipping emails already present. Returns how many users were added.
// A missing, empty or unreadable accounts list changes nothing; a failed
// backend read is returned.
func (e *Engine) ImportUsersFromAuth(ctx context.Context) (int, error) {
	raw, ok, err := e.backend.Get(ctx, model.AccountsKey)
	if err != nil {
		return 0, fmt.Errorf("import users: read accounts: %w", err)
	}
	if !ok {
		return 0, nil
	}
	accounts, err := model.DecodeAccounts([]byte(raw))
	if err != nil {
		e.logger.Warn("accounts unreadable", "key", model.AccountsKey, "error", err)
		return 0, nil
	}
	if len(accounts) == 0 {
		return 0, nil
	}

	added := 0
	_, err = e.Update(ctx, func(r *model.Record) error {
		added = 0
		seen := make(map[string]bool, len(r.Users))
		for _, u := range r.Users {
			seen[strings.ToLower(u.Email)] = true
		}
		for _, acc := range accounts {
			key := strings.ToLower(acc.Email)
			if seen[key] {
				continue
			}
			seen[key] = true

			u := model.User{
				ID:        acc.ID,
				Name:      acc.Name,
				Email:     acc.Email,
				Role:      acc.Role,
				Status:    model.UserActive,
				LastLogin: "",
			}
			if u.ID == "" {
				u.ID = e.ids.Generate()
			}
			if u.Name == "" {
				u.Name = acc.Email
			}
			if u.Role == "" {
				u.Role = model.RoleUser
			}
			r.Users = append(r.Users, u)
			added++
		}
		r.Stats.TotalUsers = len(r.Users)
		return nil
	})
	if err != nil {
		return 0, err
	}
	e.logger.Info("imported users from accounts", "added", added, "accounts", len(accounts))
	return added, nil
}
