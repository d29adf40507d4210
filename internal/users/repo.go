package users

import (
	"context"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/novastore/pkg/errors"
	"github.com/angelmondragon/novastore/pkg/kv"
	"github.com/google/uuid"
)

// Repository exposes user persistence over the users collection.
type Repository struct {
	store kv.Store
	now   func() time.Time
}

// NewRepository constructs a users repo bound to the provided store.
func NewRepository(store kv.Store) *Repository {
	return &Repository{store: store, now: time.Now}
}

// List returns every registered user in registration order.
func (r *Repository) List(ctx context.Context) ([]User, error) {
	list, err := kv.Load(ctx, r.store, kv.KeyUsers, []User{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load users")
	}
	return list, nil
}

// FindByEmail retrieves the user whose email matches case-insensitively.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if u := findByEmail(list, email); u != nil {
		return u, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
}

// PrepareCreate stages a new user onto the users collection. An existing email,
// compared case-insensitively, is a conflict. Nothing is written until the
// batch is committed, so callers can add related keys.
func (r *Repository) PrepareCreate(ctx context.Context, dto CreateUserDTO) (*User, *kv.Batch, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	if findByEmail(list, dto.Email) != nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate user id")
	}
	user := User{
		ID:           id.String(),
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: dto.PasswordHash,
		Role:         dto.Role,
		CreatedAt:    r.now().UTC(),
	}

	batch := kv.NewBatch().Put(kv.KeyUsers, append(list, user))
	return &user, batch, nil
}

// Commit writes a staged batch to the users store.
func (r *Repository) Commit(ctx context.Context, batch *kv.Batch) error {
	if err := batch.Commit(ctx, r.store); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save users")
	}
	return nil
}

func findByEmail(list []User, email string) *User {
	needle := strings.ToLower(strings.TrimSpace(email))
	if needle == "" {
		return nil
	}
	for i := range list {
		if strings.ToLower(list[i].Email) == needle {
			u := list[i]
			return &u
		}
	}
	return nil
}
