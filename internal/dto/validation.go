package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldIssue is one field-level validation error surfaced to the caller.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldIssuesFromBinding turns a gin binding error into the field-level issue
// list. Non-validator errors (e.g. malformed JSON bodies) collapse into a single
// issue on "body".
func FieldIssuesFromBinding(err error) []FieldIssue {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldIssue{{Field: "body", Message: err.Error()}}
	}

	issues := make([]FieldIssue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, FieldIssue{Field: fe.Field(), Message: messageFor(fe)})
	}
	return issues
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("failed validation rule %q", fe.Tag())
	}
}
