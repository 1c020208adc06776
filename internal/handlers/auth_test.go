package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Login(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "admin",
		"password": "admin123",
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success       bool     `json:"success"`
		Username      string   `json:"username"`
		Role          string   `json:"role"`
		JobCategories []string `json:"job_categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.Success)
	require.Equal(t, "admin", response.Username)
	require.Equal(t, "admin", response.Role)
	require.Equal(t, []string{"all"}, response.JobCategories)

	require.NotEmpty(t, w.Result().Cookies(), "expected session cookie to be set")
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "admin",
		"password": "wrong",
	}, nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_LoginMissingFields(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "admin",
	}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Check(t *testing.T) {
	env := setupTestEnv(t)
	cookies := env.login(t, "admin", "admin123")

	w := env.do(t, http.MethodGet, "/api/auth/check", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		LoggedIn      bool     `json:"logged_in"`
		Username      string   `json:"username"`
		Role          string   `json:"role"`
		JobCategories []string `json:"job_categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.LoggedIn)
	require.Equal(t, "admin", response.Username)
	require.Equal(t, []string{"all"}, response.JobCategories)
}

func TestAuthHandler_CheckWithoutSession(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/auth/check", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		LoggedIn bool `json:"logged_in"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.False(t, response.LoggedIn)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupTestEnv(t)
	cookies := env.login(t, "admin", "admin123")

	w := env.do(t, http.MethodPost, "/api/auth/logout", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	// The cleared cookie invalidates the session.
	cleared := w.Result().Cookies()
	w = env.do(t, http.MethodGet, "/api/auth/check", nil, cleared)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		LoggedIn bool `json:"logged_in"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.False(t, response.LoggedIn)
}
