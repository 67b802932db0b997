// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"munibudget/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("budget_category", validateBudgetCategory)
	}
}

// validateBudgetCategory restricts plan categories to the closed set
// the form offers, so clients that bypass the form cannot persist
// arbitrary strings.
func validateBudgetCategory(fl validator.FieldLevel) bool {
	return models.ValidCategory(fl.Field().String())
}
