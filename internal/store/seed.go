package store

import (
	"context"
	"fmt"

	"github.com/masakimorita/work-report-api/internal/constants"
	"github.com/masakimorita/work-report-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Seed initializes the master documents a fresh deployment needs: the
// built-in admin account, default job categories, and a sample project.
// Existing documents are left alone.
func Seed(ctx context.Context, s DocumentStore, adminPassword string) error {
	var users models.UserDocument
	if err := s.Load(ctx, KeyUsers, &users); err != nil {
		return err
	}
	if len(users) == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("store: hash admin password: %w", err)
		}
		users = models.UserDocument{
			constants.AdminUsername: {
				Username:      constants.AdminUsername,
				PasswordHash:  string(hash),
				Role:          constants.RoleAdmin,
				JobCategories: []string{constants.CategoryAll},
			},
		}
		if err := s.Save(ctx, KeyUsers, users); err != nil {
			return err
		}
	}

	var categories models.JobCategoryDocument
	if err := s.Load(ctx, KeyJobCategories, &categories); err != nil {
		return err
	}
	if len(categories.Categories) == 0 {
		categories.Categories = []string{"全般", "設計", "製造", "検査", "営業"}
		if err := s.Save(ctx, KeyJobCategories, categories); err != nil {
			return err
		}
	}

	var projects models.ProjectDocument
	if err := s.Load(ctx, KeyProjects, &projects); err != nil {
		return err
	}
	if len(projects.Projects) == 0 {
		projects.Projects = []models.Project{
			{ID: "1", Name: "サンプルプロジェクト", Status: constants.ProjectStatusNotStarted},
		}
		if err := s.Save(ctx, KeyProjects, projects); err != nil {
			return err
		}
	}

	return nil
}
