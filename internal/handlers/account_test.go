package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/masakimorita/work-report-api/internal/dto"
)

func TestAccountHandler_AddAndList(t *testing.T) {
	env := setupTestEnv(t)
	cookies := env.login(t, "admin", "admin123")

	w := env.do(t, http.MethodPost, "/api/accounts/add", map[string]interface{}{
		"username":       "tanaka",
		"password":       "secret",
		"job_categories": []string{"設計"},
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/accounts/", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Accounts []dto.AccountDTO `json:"accounts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Accounts, 2)

	byName := map[string]dto.AccountDTO{}
	for _, account := range response.Accounts {
		byName[account.Username] = account
	}
	require.Equal(t, "user", byName["tanaka"].Role)
	require.Equal(t, []string{"設計"}, byName["tanaka"].JobCategories)

	// Password hashes never leave the server.
	require.NotContains(t, w.Body.String(), "password")
}

func TestAccountHandler_AddDuplicate(t *testing.T) {
	env := setupTestEnv(t)
	cookies := env.login(t, "admin", "admin123")

	payload := map[string]string{"username": "tanaka", "password": "secret"}
	w := env.do(t, http.MethodPost, "/api/accounts/add", payload, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/accounts/add", payload, cookies)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAccountHandler_UpdateKeepsUntouchedFields(t *testing.T) {
	env := setupTestEnv(t)
	cookies := env.login(t, "admin", "admin123")

	w := env.do(t, http.MethodPost, "/api/accounts/add", map[string]interface{}{
		"username":       "tanaka",
		"password":       "secret",
		"job_categories": []string{"設計"},
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	// Role change only; password and categories stay.
	w = env.do(t, http.MethodPut, "/api/accounts/update", map[string]interface{}{
		"username": "tanaka",
		"role":     "admin",
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	tanaka := env.login(t, "tanaka", "secret")
	w = env.do(t, http.MethodGet, "/api/auth/check", nil, tanaka)

	var response struct {
		Role          string   `json:"role"`
		JobCategories []string `json:"job_categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "admin", response.Role)
	require.Equal(t, []string{"設計"}, response.JobCategories)
}

func TestAccountHandler_DeleteAdminRejected(t *testing.T) {
	env := setupTestEnv(t)
	cookies := env.login(t, "admin", "admin123")

	w := env.do(t, http.MethodDelete, "/api/accounts/delete", map[string]string{
		"username": "admin",
	}, cookies)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountHandler_RequiresAdmin(t *testing.T) {
	env := setupTestEnv(t)
	cookies := env.login(t, "admin", "admin123")

	w := env.do(t, http.MethodPost, "/api/accounts/add", map[string]string{
		"username": "tanaka",
		"password": "secret",
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	tanaka := env.login(t, "tanaka", "secret")
	w = env.do(t, http.MethodGet, "/api/accounts/", nil, tanaka)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, "/api/accounts/", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
