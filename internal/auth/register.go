package auth

import (
	"context"
	"strings"

	"github.com/angelmondragon/novastore/internal/users"
	pkgerrors "github.com/angelmondragon/novastore/pkg/errors"
	"github.com/angelmondragon/novastore/pkg/validators"
)

// Register creates the account and signs it in. The email is stored trimmed
// and lowercased; a blank name defaults to the email's local part.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	req.Name = validators.SanitizeString(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := validators.Struct(req); err != nil {
		return nil, err
	}
	if req.Name == "" {
		req.Name = localPart(req.Email)
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, batch, err := s.users.PrepareCreate(ctx, users.CreateUserDTO{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         req.Role,
	})
	if err != nil {
		return nil, err
	}
	// the account and its session land together or not at all
	if err := s.session.Stage(batch, principalFor(user)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "stage session")
	}
	if err := s.users.Commit(ctx, batch); err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"user_id": user.ID, "role": user.Role.String()}), "user registered")
	return &AuthResponse{User: users.FromModel(user)}, nil
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
