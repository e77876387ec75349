package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pharma-service/internal/model"
)

func TestListUsersStripsPasswords(t *testing.T) {
	t.Parallel()
	e, _ := newTestServer(t, true)
	token := testToken(t)

	code, resp := doJSON(t, e, http.MethodGet, "/api/users", token, nil)
	require.Equal(t, http.StatusOK, code)

	users, ok := resp["users"].([]any)
	require.True(t, ok)
	require.Len(t, users, 9)

	for _, u := range users {
		user, ok := u.(map[string]any)
		require.True(t, ok)
		_, hasPassword := user["password"]
		assert.False(t, hasPassword, "user %v leaked a password", user["email"])
	}
}

func TestUpdateUser(t *testing.T) {
	t.Parallel()
	e, _ := newTestServer(t, true)
	token := testToken(t)

	code, resp := doJSON(t, e, http.MethodPut, "/api/users/7", token, map[string]any{
		"phone": "+91-9111111111",
	})
	require.Equal(t, http.StatusOK, code)

	user := resp["user"].(map[string]any)
	assert.Equal(t, "+91-9111111111", user["phone"])
	assert.Equal(t, "mr@pharma.com", user["email"])
	assert.NotEmpty(t, user["updatedAt"])
	_, hasPassword := user["password"]
	assert.False(t, hasPassword)
}

func TestUpdateUserPasswordAllowsLoginWithNewPassword(t *testing.T) {
	t.Parallel()
	e, _ := newTestServer(t, true)
	token := testToken(t)

	code, resp := doJSON(t, e, http.MethodPut, "/api/users/1", token, map[string]any{
		"password": "newpass456",
	})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, resp["success"])

	// the new password works
	loginAs(t, e, "admin@pharma.com", "newpass456", "admin")

	// the old one no longer does
	code, resp = doJSON(t, e, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "admin@pharma.com",
		"password": "admin123",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid credentials", resp["message"])
}

func TestUpdateUserNeverStoresPlaintextPassword(t *testing.T) {
	t.Parallel()
	e, st := newTestServer(t, true)
	token := testToken(t)

	code, _ := doJSON(t, e, http.MethodPut, "/api/users/2", token, map[string]any{
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, code)

	stored, err := st.Get(model.CollectionUsers, "2")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", stored.String("password"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.String("password")), []byte("supersecret")))
}

func TestDeleteUserThenGetReturns404(t *testing.T) {
	t.Parallel()
	e, _ := newTestServer(t, true)
	token := testToken(t)

	code, _ := doJSON(t, e, http.MethodDelete, "/api/users/9", token, nil)
	require.Equal(t, http.StatusOK, code)

	code, resp := doJSON(t, e, http.MethodGet, "/api/users/9", token, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "User not found", resp["message"])
}

func TestUserNotFound(t *testing.T) {
	t.Parallel()
	e, _ := newTestServer(t, false)
	token := testToken(t)

	code, _ := doJSON(t, e, http.MethodGet, "/api/users/404404", token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = doJSON(t, e, http.MethodPut, "/api/users/404404", token, map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = doJSON(t, e, http.MethodDelete, "/api/users/404404", token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}
