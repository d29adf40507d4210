package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/novastore/internal/users"
	"github.com/angelmondragon/novastore/pkg/auth/session"
	pkgerrors "github.com/angelmondragon/novastore/pkg/errors"
	"github.com/angelmondragon/novastore/pkg/kv"
	"github.com/angelmondragon/novastore/pkg/logger"
)

const invalidCredentialsMessage = "invalid credentials"

// Service covers registration, login and the active session.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*session.Principal, error)
}

type service struct {
	users   userRepository
	session sessionManager
	hasher  passwordHasher
	logg    *logger.Logger
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*users.User, error)
	PrepareCreate(ctx context.Context, dto users.CreateUserDTO) (*users.User, *kv.Batch, error)
	Commit(ctx context.Context, batch *kv.Batch) error
}

type sessionManager interface {
	Current(ctx context.Context) (*session.Principal, error)
	Establish(ctx context.Context, p session.Principal) error
	Stage(batch *kv.Batch, p session.Principal) error
	Clear(ctx context.Context) error
}

type passwordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	SessionManager sessionManager
	Hasher         passwordHasher
	Logger         *logger.Logger
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if params.Hasher == nil {
		return nil, fmt.Errorf("password hasher is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		users:   params.UserRepo,
		session: params.SessionManager,
		hasher:  params.Hasher,
		logg:    logg,
	}, nil
}

// Login requires email, password and role to match a registered user exactly.
// Every mismatch is reported the same way.
func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeAuthFailed, invalidCredentialsMessage)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeAuthFailed, invalidCredentialsMessage)
		}
		return nil, err
	}
	if !s.hasher.Verify(req.Password, user.PasswordHash) || user.Role != req.Role {
		return nil, pkgerrors.New(pkgerrors.CodeAuthFailed, invalidCredentialsMessage)
	}

	if err := s.establish(ctx, user); err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithUserID(ctx, user.ID), "user logged in")
	return &AuthResponse{User: users.FromModel(user)}, nil
}

// Logout clears the session unconditionally.
func (s *service) Logout(ctx context.Context) error {
	if err := s.session.Clear(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear session")
	}
	return nil
}

// Current returns the active principal or nil for a guest.
func (s *service) Current(ctx context.Context) (*session.Principal, error) {
	p, err := s.session.Current(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session")
	}
	return p, nil
}

func (s *service) establish(ctx context.Context, user *users.User) error {
	if err := s.session.Establish(ctx, principalFor(user)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store session")
	}
	return nil
}

func principalFor(user *users.User) session.Principal {
	return session.Principal{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
