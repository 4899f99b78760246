package service

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}
