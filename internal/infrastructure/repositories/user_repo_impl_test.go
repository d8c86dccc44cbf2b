package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"vendor-pay.backend/internal/domain/entities"
	domainerrors "vendor-pay.backend/internal/domain/errors"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &entities.User{
		ID:           uuid.New(),
		Email:        "jane@example.com",
		Name:         "Jane",
		Role:         entities.UserRoleCustomer,
		PasswordHash: "hashed",
	}
	require.NoError(t, repo.Create(ctx, u))

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, entities.UserRoleCustomer, byID.Role)

	byEmail, err := repo.GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	// email is unique
	dup := &entities.User{ID: uuid.New(), Email: "jane@example.com", Name: "Other", Role: entities.UserRoleCustomer, PasswordHash: "x"}
	require.Error(t, repo.Create(ctx, dup))
}
