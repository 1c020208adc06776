package dto

import "github.com/masakimorita/work-report-api/internal/models"

// AccountDTO represents an account in API responses, without the
// password hash
type AccountDTO struct {
	Username      string   `json:"username"`
	Role          string   `json:"role"`
	JobCategories []string `json:"job_categories"`
}

// ToAccountDTO converts a User model to AccountDTO
func ToAccountDTO(user models.User) AccountDTO {
	categories := user.JobCategories
	if categories == nil {
		categories = []string{}
	}
	return AccountDTO{
		Username:      user.Username,
		Role:          user.Role,
		JobCategories: categories,
	}
}

// ToAccountDTOs converts a slice of User models
func ToAccountDTOs(users []models.User) []AccountDTO {
	accounts := make([]AccountDTO, len(users))
	for i, user := range users {
		accounts[i] = ToAccountDTO(user)
	}
	return accounts
}
