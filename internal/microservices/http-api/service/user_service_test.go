package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"yamdb/internal/domain"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
)

func TestUserService_CreateDefaults(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, quietLogger())
	ctx := context.Background()
	users.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.Create(ctx, dto.UserCreateRequest{Username: "carol", Email: "carol@example.com"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.IsActive)

	_, err = svc.Create(ctx, dto.UserCreateRequest{Username: "me", Email: "me@example.com"})
	assert.ErrorIs(t, err, domain.ErrReservedName)

	_, err = svc.Create(ctx, dto.UserCreateRequest{Username: "dave", Email: "dave@example.com", Role: "owner"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	users.AssertNumberOfCalls(t, "Create", 1)
}

func TestUserService_CreateConflict(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, quietLogger())
	ctx := context.Background()
	users.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(domain.ErrEmailTaken)

	_, err := svc.Create(ctx, dto.UserCreateRequest{Username: "carol", Email: "taken@example.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserService_EmailsStoredLowerCased(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, quietLogger())
	ctx := context.Background()
	users.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil)

	created, err := svc.Create(ctx, dto.UserCreateRequest{Username: "carol", Email: "Carol@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", created.Email)

	me := &models.User{ID: "u-1", Username: "alice", Email: "alice@example.com"}
	users.On("FindByID", ctx, "u-1").Return(me, nil)
	users.On("Update", ctx, me).Return(nil)

	email := " ALICE@New.example.com "
	updated, err := svc.UpdateMe(ctx, me.Actor(), dto.UserPatchRequest{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "alice@new.example.com", updated.Email)
}

func TestUserService_UpdateMeCannotChangeRole(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, quietLogger())
	ctx := context.Background()
	me := &models.User{ID: "u-1", Username: "alice", Role: domain.RoleUser}
	users.On("FindByID", ctx, "u-1").Return(me, nil)
	users.On("Update", ctx, me).Return(nil)

	role := "admin"
	bio := "film nerd"
	updated, err := svc.UpdateMe(ctx, me.Actor(), dto.UserPatchRequest{Role: &role, Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, updated.Role)
	assert.Equal(t, "film nerd", updated.Bio)
}

func TestUserService_AdminUpdate(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, quietLogger())
	ctx := context.Background()
	target := &models.User{ID: "u-2", Username: "bob", Role: domain.RoleUser}
	users.On("FindByUsername", ctx, "bob").Return(target, nil)
	users.On("Update", ctx, target).Return(nil)

	role := "moderator"
	updated, err := svc.Update(ctx, "bob", dto.UserPatchRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleModerator, updated.Role)

	bad := "superhero"
	_, err = svc.Update(ctx, "bob", dto.UserPatchRequest{Role: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	name := "has space"
	_, err = svc.Update(ctx, "bob", dto.UserPatchRequest{Username: &name})
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)
	users.AssertNumberOfCalls(t, "Update", 1)
}

func TestUserService_DeleteByUsername(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, quietLogger())
	ctx := context.Background()
	users.On("FindByUsername", ctx, "bob").Return(&models.User{ID: "u-2", Username: "bob"}, nil)
	users.On("Delete", ctx, "u-2").Return(nil)

	require.NoError(t, svc.Delete(ctx, "bob"))
	users.AssertCalled(t, "Delete", ctx, "u-2")
}
