package serializer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the envelope for every failure: an error field, plus a
// structured details array for validation failures. Internal error detail is
// never exposed to the caller.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// MessageResponse wraps operations whose success body is a bare message.
type MessageResponse struct {
	Message string `json:"message"`
}

func Err(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// ValidationErr converts a binding error into a 400 body. Field-level
// failures from the validator are flattened into the details array.
func ValidationErr(msg string, err error) ErrorResponse {
	res := ErrorResponse{Error: msg}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			res.Details = append(res.Details, fieldError(fe))
		}
	}
	return res
}

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
