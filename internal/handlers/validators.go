package handlers

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/yukikurage/workout-api/internal/errors"
)

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(apierrors.JSONTagName)
	if err := v.RegisterValidation("crontab", validateCrontab); err != nil {
		panic(err)
	}
}

// validateCrontab accepts a five-field cron expression, or an empty string
// meaning no recurrence. Each field may hold digits, '*' and the separators
// ',', '-' and '/'.
func validateCrontab(fl validator.FieldLevel) bool {
	expr := fl.Field().String()
	if expr == "" {
		return true
	}
	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return false
	}
	for _, field := range fields {
		for _, r := range field {
			switch {
			case r >= '0' && r <= '9':
			case r == '*', r == ',', r == '-', r == '/':
			default:
				return false
			}
		}
	}
	return true
}
