package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masakimorita/work-report-api/internal/dto"
	apierrors "github.com/masakimorita/work-report-api/internal/errors"
	"github.com/masakimorita/work-report-api/internal/services"
)

// AccountHandler coordinates user-master HTTP handlers. Every route is
// admin only.
type AccountHandler struct {
	accountService *services.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService *services.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// ListAccounts returns every account without password hashes.
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.accountService.List(c.Request.Context())
	if err != nil {
		apierrors.StorageFailure(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToAccountDTOs(accounts)})
}

// AddAccount creates a new account.
func (h *AccountHandler) AddAccount(c *gin.Context) {
	type AddAccountRequest struct {
		Username      string   `json:"username"`
		Password      string   `json:"password"`
		Role          string   `json:"role"`
		JobCategories []string `json:"job_categories"`
	}

	var req AddAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.accountService.Add(c.Request.Context(), services.AddAccountInput{
		Username:      req.Username,
		Password:      req.Password,
		Role:          req.Role,
		JobCategories: req.JobCategories,
	})
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateAccount modifies an existing account. Absent fields are left
// untouched.
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	type UpdateAccountRequest struct {
		Username      string    `json:"username"`
		Password      *string   `json:"password"`
		Role          *string   `json:"role"`
		JobCategories *[]string `json:"job_categories"`
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateAccountInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	}
	if req.JobCategories != nil {
		input.JobCategories = *req.JobCategories
		input.SetCategories = true
	}

	if err := h.accountService.Update(c.Request.Context(), input); err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteAccount removes an account. The built-in admin cannot be
// deleted.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	type DeleteAccountRequest struct {
		Username string `json:"username"`
	}

	var req DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.accountService.Delete(c.Request.Context(), req.Username); err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func respondAccountError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingCredentials),
		errors.Is(err, services.ErrUsernameRequired),
		errors.Is(err, services.ErrCannotDeleteAdmin):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFailedToHash):
		apierrors.InternalError(c, "Failed to hash password")
	default:
		apierrors.StorageFailure(c, "")
	}
}
