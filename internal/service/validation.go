package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"notes-server/internal/domain"

	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New()

	titleRules = "required,max=" + strconv.Itoa(domain.MaxTitleLength)
	bodyRules  = "max=" + strconv.Itoa(domain.MaxBodyLength)
)

// validateNoteFields checks the supplied fields, title first. A nil field is
// not validated. The returned title is trimmed; the body is kept as given.
func validateNoteFields(title, body *string) (string, error) {
	var trimmed string
	if title != nil {
		trimmed = strings.TrimSpace(*title)
		if err := validate.Var(trimmed, titleRules); err != nil {
			return "", fieldError("Title", err)
		}
	}

	if body != nil {
		if err := validate.Var(*body, bodyRules); err != nil {
			return "", fieldError("Body", err)
		}
	}

	return trimmed, nil
}

func fieldError(field string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validating %s: %w", strings.ToLower(field), err)
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return newValidationError(field + " is required")
	case "max":
		return newValidationError(fmt.Sprintf("%s must not exceed %s characters", field, fe.Param()))
	default:
		return newValidationError(field + " is invalid")
	}
}
