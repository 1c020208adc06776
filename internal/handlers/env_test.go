package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/masakimorita/work-report-api/internal/constants"
	"github.com/masakimorita/work-report-api/internal/middleware"
	"github.com/masakimorita/work-report-api/internal/repository"
	"github.com/masakimorita/work-report-api/internal/services"
	"github.com/masakimorita/work-report-api/internal/store"
)

type testEnv struct {
	router *gin.Engine
}

// setupTestEnv wires the full handler stack over a throwaway local
// store seeded with the default admin account.
func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	docStore, err := store.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Seed(context.Background(), docStore, "admin123"))

	userRepo := repository.NewUserRepository(docStore)
	projectRepo := repository.NewProjectRepository(docStore)
	workTypeRepo := repository.NewWorkTypeRepository(docStore)
	categoryRepo := repository.NewJobCategoryRepository(docStore)
	workItemRepo := repository.NewWorkItemRepository(docStore)
	reportRepo := repository.NewReportRepository(docStore)

	authService := services.NewAuthService(userRepo)
	accountService := services.NewAccountService(userRepo)
	workItemService := services.NewWorkItemService(workItemRepo)
	workTypeService := services.NewWorkTypeService(workTypeRepo)
	categoryService := services.NewJobCategoryService(categoryRepo)
	projectService := services.NewProjectService(projectRepo, workTypeRepo, workItemRepo, reportRepo, userRepo)
	reportService := services.NewReportService(reportRepo, userRepo)

	authHandler := NewAuthHandler(authService)
	accountHandler := NewAccountHandler(accountService)
	workItemHandler := NewWorkItemHandler(workItemService)
	workTypeHandler := NewWorkTypeHandler(workTypeService)
	categoryHandler := NewJobCategoryHandler(categoryService)
	projectHandler := NewProjectHandler(projectService)
	reportHandler := NewReportHandler(reportService)

	r := gin.New()
	sessionStore := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/check", authHandler.Check)
		}

		accounts := api.Group("/accounts")
		accounts.Use(middleware.RequireAdmin())
		{
			accounts.GET("/", accountHandler.ListAccounts)
			accounts.POST("/add", accountHandler.AddAccount)
			accounts.PUT("/update", accountHandler.UpdateAccount)
			accounts.DELETE("/delete", accountHandler.DeleteAccount)
		}

		masters := api.Group("/masters")
		{
			masters.GET("/work-items", middleware.RequireLogin(), workItemHandler.GetWorkItems)
			masters.POST("/work-items", middleware.RequireAdmin(), workItemHandler.SaveWorkItems)
			masters.POST("/work-items/add", middleware.RequireAdmin(), workItemHandler.AddWorkItem)
			masters.PUT("/work-items/update", middleware.RequireAdmin(), workItemHandler.UpdateWorkItem)
			masters.DELETE("/work-items/delete", middleware.RequireAdmin(), workItemHandler.DeleteWorkItems)
			masters.GET("/work-items/export", middleware.RequireAdmin(), workItemHandler.ExportWorkItems)
			masters.POST("/work-items/preview", middleware.RequireAdmin(), workItemHandler.PreviewWorkItems)
			masters.POST("/work-items/import", middleware.RequireAdmin(), workItemHandler.ImportWorkItems)

			masters.GET("/job-categories", middleware.RequireLogin(), categoryHandler.ListJobCategories)
			masters.POST("/job-categories", middleware.RequireAdmin(), categoryHandler.SaveJobCategories)

			masters.GET("/projects", middleware.RequireLogin(), projectHandler.ListProjects)
			masters.POST("/projects/add", middleware.RequireAdmin(), projectHandler.AddProject)
			masters.PUT("/projects/update", middleware.RequireAdmin(), projectHandler.UpdateProject)
			masters.DELETE("/projects/delete", middleware.RequireAdmin(), projectHandler.DeleteProject)
			masters.GET("/projects/export", middleware.RequireAdmin(), projectHandler.ExportProject)

			masters.GET("/work-types", middleware.RequireLogin(), workTypeHandler.ListWorkTypes)
			masters.POST("/work-types/add", middleware.RequireAdmin(), workTypeHandler.AddWorkType)
			masters.PUT("/work-types/update", middleware.RequireAdmin(), workTypeHandler.UpdateWorkType)
			masters.DELETE("/work-types/delete", middleware.RequireAdmin(), workTypeHandler.DeleteWorkType)
			masters.PUT("/work-types/update-order", middleware.RequireAdmin(), workTypeHandler.UpdateWorkTypeOrder)

			masters.GET("/reports/export-project-view", middleware.RequireAdmin(), projectHandler.ExportProjectView)
		}

		reports := api.Group("/reports")
		reports.Use(middleware.RequireLogin())
		{
			reports.GET("/", reportHandler.ListReports)
			reports.POST("/add", reportHandler.AddReport)
			reports.PUT("/update", reportHandler.UpdateReport)
			reports.DELETE("/delete", reportHandler.DeleteReport)
			reports.GET("/date/:date", reportHandler.GetReportsByDate)
			reports.GET("/all", middleware.RequireAdmin(), reportHandler.GetAllReports)
		}
	}

	return testEnv{router: r}
}

// login authenticates through the real login route and returns the
// session cookies to attach to later requests.
func (env testEnv) login(t *testing.T, username, password string) []*http.Cookie {
	t.Helper()

	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies
}

// do sends a JSON request with the given session cookies.
func (env testEnv) do(t *testing.T, method, path string, payload interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}
