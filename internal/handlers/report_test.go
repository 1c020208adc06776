package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/masakimorita/work-report-api/internal/models"
)

func addReport(t *testing.T, env testEnv, cookies []*http.Cookie, date string, projects []models.ReportProject) models.Report {
	t.Helper()

	w := env.do(t, http.MethodPost, "/api/reports/add", map[string]interface{}{
		"date":     date,
		"projects": projects,
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Report models.Report `json:"report"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response.Report
}

func TestReportHandler_AddAndList(t *testing.T) {
	env := setupTestEnv(t)
	cookies := env.login(t, "admin", "admin123")

	addReport(t, env, cookies, "2024-01-10", []models.ReportProject{
		{ProjectID: "1", WorkItems: []models.ReportWorkItem{
			{WorkItemID: "item1", WorkTypeID: "wt1", Minutes: 60},
		}},
	})
	addReport(t, env, cookies, "2024-01-12", nil)
	addReport(t, env, cookies, "2024-01-11", nil)

	w := env.do(t, http.MethodGet, "/api/reports/", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Reports []models.Report `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Reports, 3)

	// Newest date first.
	require.Equal(t, "2024-01-12", response.Reports[0].Date)
	require.Equal(t, "2024-01-11", response.Reports[1].Date)
	require.Equal(t, "2024-01-10", response.Reports[2].Date)
	require.NotEmpty(t, response.Reports[0].CreatedAt)
}

func TestReportHandler_UpdateAndDelete(t *testing.T) {
	env := setupTestEnv(t)
	cookies := env.login(t, "admin", "admin123")

	report := addReport(t, env, cookies, "2024-01-10", nil)

	w := env.do(t, http.MethodPut, "/api/reports/update", map[string]interface{}{
		"id":   report.ID,
		"date": "2024-01-15",
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var updated struct {
		Report models.Report `json:"report"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, "2024-01-15", updated.Report.Date)
	require.Equal(t, report.CreatedAt, updated.Report.CreatedAt)

	w = env.do(t, http.MethodPut, "/api/reports/update", map[string]interface{}{
		"id": "missing",
	}, cookies)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, "/api/reports/delete", map[string]string{
		"id": report.ID,
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/reports/", nil, cookies)
	var listed struct {
		Reports []models.Report `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Empty(t, listed.Reports)
}

func TestReportHandler_ByDate(t *testing.T) {
	env := setupTestEnv(t)
	cookies := env.login(t, "admin", "admin123")

	addReport(t, env, cookies, "2024-01-10", nil)
	addReport(t, env, cookies, "2024-01-11", nil)

	w := env.do(t, http.MethodGet, "/api/reports/date/2024-01-10", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Reports []models.Report `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Reports, 1)
	require.Equal(t, "2024-01-10", response.Reports[0].Date)
}

func TestReportHandler_ReportsAreScopedToUser(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.login(t, "admin", "admin123")

	w := env.do(t, http.MethodPost, "/api/accounts/add", map[string]string{
		"username": "tanaka",
		"password": "secret",
	}, admin)
	require.Equal(t, http.StatusOK, w.Code)

	tanaka := env.login(t, "tanaka", "secret")
	addReport(t, env, tanaka, "2024-01-10", nil)

	w = env.do(t, http.MethodGet, "/api/reports/", nil, admin)
	var adminList struct {
		Reports []models.Report `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &adminList))
	require.Empty(t, adminList.Reports)
}

func TestReportHandler_AllMergesUsers(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.login(t, "admin", "admin123")

	w := env.do(t, http.MethodPost, "/api/accounts/add", map[string]string{
		"username": "tanaka",
		"password": "secret",
	}, admin)
	require.Equal(t, http.StatusOK, w.Code)

	tanaka := env.login(t, "tanaka", "secret")
	addReport(t, env, tanaka, "2024-01-10", nil)
	addReport(t, env, admin, "2024-01-12", nil)

	w = env.do(t, http.MethodGet, "/api/reports/all", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Reports []models.Report `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Reports, 2)
	require.Equal(t, "admin", response.Reports[0].Username)
	require.Equal(t, "tanaka", response.Reports[1].Username)

	// Admin only.
	w = env.do(t, http.MethodGet, "/api/reports/all", nil, tanaka)
	require.Equal(t, http.StatusForbidden, w.Code)
}
