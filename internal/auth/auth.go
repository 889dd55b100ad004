// Package auth manages the signed-up accounts list and the current-session
// marker. Both live next to the store record in the same key-value table.
//
// Passwords are stored and compared in plain text. The accounts list is a demo
// fixture, not a credential store.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Punitjadhav07/Hack-build/internal/errdef"
	"github.com/Punitjadhav07/Hack-build/internal/model"
)

const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// Default administrator credentials.
const (
	DefaultAdminEmail    = "admin@admin.com"
	DefaultAdminPassword = "admin@123"
	adminID              = "admin"
	adminName            = "Administrator"
)

// Messages shown to the user for rejected forms.
const (
	MsgPasswordMismatch = "Passwords do not match"
	MsgPasswordTooShort = "Password must be at least 6 characters long"
	MsgEmailTaken       = "User with this email already exists"
	MsgInvalidAdmin     = "Invalid admin credentials"
	MsgUserNotFound     = "User not found. Please sign up first."
	MsgInvalidPassword  = "Invalid password"
	MsgSignupSucceeded  = "Account created successfully! You can now sign in."
)

// KV is the slice of the key-value table auth needs.
// Implemented by store.Store and store.RedisKV.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) (int64, error)
	Delete(ctx context.Context, key string) error
}

// Service signs accounts up and in.
type Service struct {
	kv            KV
	logger        *slog.Logger
	now           func() time.Time
	validate      *validator.Validate
	adminEmail    string
	adminPassword string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to discarding output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithNow sets the clock used for account ids and createdAt.
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithAdmin overrides the administrator credentials. Empty values keep the
// defaults.
func WithAdmin(email, password string) Option {
	return func(s *Service) {
		if email != "" {
			s.adminEmail = email
		}
		if password != "" {
			s.adminPassword = password
		}
	}
}

// New returns a Service over kv.
func New(kv KV, opts ...Option) *Service {
	s := &Service{
		kv:            kv,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:           time.Now,
		validate:      validator.New(),
		adminEmail:    DefaultAdminEmail,
		adminPassword: DefaultAdminPassword,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignupForm is the account creation form.
type SignupForm struct {
	Name            string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"min=6"`
	ConfirmPassword string
}

// LoginForm is the sign-in form. Role selects the admin or user path.
type LoginForm struct {
	Email    string     `validate:"required"`
	Password string     `validate:"required"`
	Role     model.Role `validate:"omitempty,oneof=user admin"`
}

// Accounts returns the signed-up accounts. A missing, unreadable or failed
// read is empty.
func (s *Service) Accounts(ctx context.Context) []model.Account {
	accounts, err := s.loadAccounts(ctx)
	if err != nil {
		s.logger.Warn("accounts read failed", "key", model.AccountsKey, "error", err)
		return []model.Account{}
	}
	return accounts
}

// loadAccounts is Accounts for callers that write the list back: a failed
// backend read is returned instead of an empty list.
func (s *Service) loadAccounts(ctx context.Context) ([]model.Account, error) {
	raw, ok, err := s.kv.Get(ctx, model.AccountsKey)
	if err != nil {
		return nil, fmt.Errorf("read accounts: %w", err)
	}
	if !ok {
		return []model.Account{}, nil
	}
	accounts, err := model.DecodeAccounts([]byte(raw))
	if err != nil {
		s.logger.Warn("accounts unreadable", "key", model.AccountsKey, "error", err)
		return []model.Account{}, nil
	}
	return accounts, nil
}

// Signup validates form and appends a new account with role user.
func (s *Service) Signup(ctx context.Context, form SignupForm) (model.Account, error) {
	if form.Password != form.ConfirmPassword {
		return model.Account{}, errdef.NewBadRequest(MsgPasswordMismatch)
	}
	if err := s.validate.Struct(form); err != nil {
		return model.Account{}, formError(err)
	}

	accounts, err := s.loadAccounts(ctx)
	if err != nil {
		return model.Account{}, fmt.Errorf("signup: %w", err)
	}
	if model.FindAccountByEmail(accounts, form.Email) >= 0 {
		return model.Account{}, errdef.NewDuplicated(MsgEmailTaken)
	}

	now := s.now()
	acc := model.Account{
		ID:        model.ID(strconv.FormatInt(now.UnixMilli(), 10)),
		Name:      form.Name,
		Email:     form.Email,
		Password:  form.Password,
		Role:      model.RoleUser,
		CreatedAt: now.UTC().Format(isoLayout),
	}
	accounts = append(accounts, acc)

	data, err := json.Marshal(accounts)
	if err != nil {
		return model.Account{}, fmt.Errorf("signup: encode accounts: %w", err)
	}
	if _, err := s.kv.Put(ctx, model.AccountsKey, string(data)); err != nil {
		return model.Account{}, fmt.Errorf("signup: %w", err)
	}
	s.logger.Info("account created", "id", acc.ID, "email", acc.Email)
	return acc, nil
}

// Login checks form and stores the session marker. Administrators sign in
// with the configured credentials; users must have signed up with role user.
func (s *Service) Login(ctx context.Context, form LoginForm) (model.Session, error) {
	if err := s.validate.Struct(form); err != nil {
		return model.Session{}, formError(err)
	}

	var session model.Session
	if form.Role == model.RoleAdmin {
		if form.Email != s.adminEmail || form.Password != s.adminPassword {
			return model.Session{}, errdef.NewUnauthorized(MsgInvalidAdmin)
		}
		session = model.Session{ID: adminID, Name: adminName, Email: s.adminEmail, Role: model.RoleAdmin}
	} else {
		accounts, err := s.loadAccounts(ctx)
		if err != nil {
			return model.Session{}, fmt.Errorf("login: %w", err)
		}
		acc, ok := findUserAccount(accounts, form.Email)
		if !ok {
			return model.Session{}, errdef.NewNotFound(MsgUserNotFound)
		}
		if acc.Password != form.Password {
			return model.Session{}, errdef.NewUnauthorized(MsgInvalidPassword)
		}
		session = model.Session{ID: acc.ID, Name: acc.Name, Email: acc.Email, Role: acc.Role}
	}

	data, err := json.Marshal(session)
	if err != nil {
		return model.Session{}, fmt.Errorf("login: encode session: %w", err)
	}
	if _, err := s.kv.Put(ctx, model.SessionKey, string(data)); err != nil {
		return model.Session{}, fmt.Errorf("login: %w", err)
	}
	s.logger.Info("signed in", "id", session.ID, "role", session.Role)
	return session, nil
}

// Logout clears the session marker.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.kv.Delete(ctx, model.SessionKey); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Whoami returns the current session. ok is false when nobody is signed in or
// the marker is unreadable.
func (s *Service) Whoami(ctx context.Context) (model.Session, bool) {
	raw, ok, err := s.kv.Get(ctx, model.SessionKey)
	if err != nil {
		s.logger.Warn("session read failed", "error", err)
		return model.Session{}, false
	}
	if !ok {
		return model.Session{}, false
	}
	var session model.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		s.logger.Warn("session unreadable", "error", err)
		return model.Session{}, false
	}
	return session, true
}

func findUserAccount(accounts []model.Account, email string) (model.Account, bool) {
	for _, acc := range accounts {
		if acc.Email == email && acc.Role == model.RoleUser {
			return acc, true
		}
	}
	return model.Account{}, false
}

// formError turns the first validation failure into a form message.
func formError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return errdef.NewBadRequest("invalid form: %v", err)
	}
	fe := ve[0]
	switch {
	case fe.Field() == "Password" && fe.Tag() == "min":
		return errdef.NewBadRequest(MsgPasswordTooShort)
	case fe.Tag() == "required":
		return errdef.NewBadRequest("%s is required", fe.Field())
	case fe.Tag() == "email":
		return errdef.NewBadRequest("%s is not a valid email address", fe.Field())
	default:
		return errdef.NewBadRequest("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
