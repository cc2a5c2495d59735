package handler

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"ridehail/internal/domain"
)

// MessageResponse is the plain error body for not-found and duplicate
// errors: {"message": "..."}.
type MessageResponse struct {
	Message string `json:"message"`
}

// Violation is one failed field constraint.
type Violation struct {
	FieldName string `json:"fieldName"`
	Message   string `json:"message"`
}

// ViolationResponse is the error body for request validation failures.
type ViolationResponse struct {
	Violations []Violation `json:"violations"`
}

// respondError translates a domain error into an HTTP response at the
// single boundary point for the service.
func respondError(c *gin.Context, err error) {
	var notFound *domain.NotFoundError
	var duplicate *domain.DuplicateError
	var invalidStatus *domain.InvalidStatusError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, MessageResponse{Message: notFound.Error()})
	case errors.As(err, &duplicate):
		c.JSON(http.StatusBadRequest, MessageResponse{Message: duplicate.Error()})
	case errors.As(err, &invalidStatus):
		c.JSON(http.StatusBadRequest, MessageResponse{Message: invalidStatus.Error()})
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		c.JSON(http.StatusBadGateway, MessageResponse{Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: "internal server error"})
	}
}

// respondBindingError renders a request-body binding failure as a
// violations list, one entry per failing field.
func respondBindingError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid request body"})
		return
	}

	violations := make([]Violation, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		violations = append(violations, Violation{
			FieldName: lowerFirst(fieldErr.Field()),
			Message:   violationMessage(fieldErr),
		})
	}
	c.JSON(http.StatusBadRequest, ViolationResponse{Violations: violations})
}

func violationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "must not be blank"
	case "min":
		return "size must be at least " + fieldErr.Param()
	case "max":
		return "size must be at most " + fieldErr.Param()
	case "gt":
		return "must be greater than " + fieldErr.Param()
	case "email":
		return "must be a well-formed email address"
	case "dive":
		return "contains an invalid element"
	default:
		return "is invalid: failed on " + fieldErr.Tag()
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return strings.TrimSpace(string(runes))
}
