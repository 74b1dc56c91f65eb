package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/mfg-tool-dashboard/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_CreateUser(t *testing.T) {
	env := setupServiceTestEnv(t)
	testutil.CreateTools(t, env.db, "A", "B")

	user, err := env.userService.CreateUser(CreateUserInput{
		EmployeeID:     "E100",
		Username:       "jdoe",
		FirstName:      "Jane",
		LastName:       "Doe",
		Password:       "secret",
		AssignedToolID: testutil.Ptr(uint64(2)),
	})
	require.NoError(t, err)

	stored, err := env.userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsAdmin)
	require.NotNil(t, stored.AssignedToolID)
	assert.Equal(t, uint64(2), *stored.AssignedToolID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret")))
}

func TestUserService_CreateUser_MissingFields(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.userService.CreateUser(CreateUserInput{EmployeeID: "E100"})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"username", "password"}, validationErr.Fields)
}

func TestUserService_CreateUser_DuplicateEmployeeID(t *testing.T) {
	env := setupServiceTestEnv(t)
	testutil.CreateUser(t, env.db, "E100", "pw", false, nil)

	_, err := env.userService.CreateUser(CreateUserInput{EmployeeID: "E100", Username: "dup", Password: "pw"})
	assert.ErrorIs(t, err, ErrEmployeeIDExists)

	users, err := env.userRepo.List()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserService_CreateUser_UnknownTool(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.userService.CreateUser(CreateUserInput{
		EmployeeID:     "E100",
		Username:       "jdoe",
		Password:       "pw",
		AssignedToolID: testutil.Ptr(uint64(9)),
	})
	assert.ErrorIs(t, err, ErrInvalidAssignedTool)
}

func TestUserService_UpdateUser(t *testing.T) {
	env := setupServiceTestEnv(t)
	testutil.CreateTools(t, env.db, "A", "B")
	user := testutil.CreateUser(t, env.db, "E100", "old-pw", false, testutil.Ptr(uint64(1)))

	updated, err := env.userService.UpdateUser(user.ID, UpdateUserInput{
		Username:       testutil.Ptr("renamed"),
		AssignmentSet:  true,
		AssignedToolID: testutil.Ptr(uint64(2)),
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Username)
	assert.Equal(t, user.PasswordHash, updated.PasswordHash)
	require.NotNil(t, updated.AssignedToolID)
	assert.Equal(t, uint64(2), *updated.AssignedToolID)

	updated, err = env.userService.UpdateUser(user.ID, UpdateUserInput{
		NewPassword:   testutil.Ptr("new-pw"),
		AssignmentSet: true,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.AssignedToolID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("new-pw")))
}

func TestUserService_UpdateUser_Errors(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := testutil.CreateUser(t, env.db, "E100", "pw", false, nil)

	_, err := env.userService.UpdateUser(user.ID, UpdateUserInput{Username: testutil.Ptr(" ")})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = env.userService.UpdateUser(user.ID, UpdateUserInput{AssignmentSet: true, AssignedToolID: testutil.Ptr(uint64(3))})
	assert.ErrorIs(t, err, ErrInvalidAssignedTool)

	_, err = env.userService.UpdateUser(user.ID+100, UpdateUserInput{FirstName: testutil.Ptr("x")})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_DeleteUser(t *testing.T) {
	env := setupServiceTestEnv(t)
	admin := testutil.CreateUser(t, env.db, "admin", "pw", true, nil)
	operator := testutil.CreateUser(t, env.db, "E1", "pw", false, nil)

	err := env.userService.DeleteUser(admin, admin.ID)
	assert.ErrorIs(t, err, ErrCannotDeleteSelf)
	_, err = env.userRepo.FindByID(admin.ID)
	assert.NoError(t, err)

	require.NoError(t, env.userService.DeleteUser(admin, operator.ID))
	_, err = env.userRepo.FindByID(operator.ID)
	assert.Error(t, err)

	assert.ErrorIs(t, env.userService.DeleteUser(admin, operator.ID), ErrUserNotFound)
}

func TestUserService_ListUsers_WithToolNames(t *testing.T) {
	env := setupServiceTestEnv(t)
	testutil.CreateTools(t, env.db, "Lathe")
	testutil.CreateUser(t, env.db, "admin", "pw", true, nil)
	testutil.CreateUser(t, env.db, "E1", "pw", false, testutil.Ptr(uint64(1)))
	testutil.CreateUser(t, env.db, "E2", "pw", false, testutil.Ptr(uint64(5)))

	users, err := env.userService.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 3)

	byEmployee := map[string]UserWithTool{}
	for _, u := range users {
		byEmployee[u.EmployeeID] = u
	}

	assert.Equal(t, "admin", users[0].EmployeeID)
	require.NotNil(t, byEmployee["E1"].ToolName)
	assert.Equal(t, "Lathe", *byEmployee["E1"].ToolName)
	assert.Nil(t, byEmployee["E2"].ToolName)
	assert.Nil(t, byEmployee["admin"].ToolName)
}
