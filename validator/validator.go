package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	apperrors "script9/errors"
	"script9/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// Register installs the json tag name function and the custom rules on gin's validator.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		configure(v)
	})
}

func configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("priceunit", func(fl validator.FieldLevel) bool {
		_, err := models.PriceUnit(fl.Field().String()).Duration()
		return err == nil
	})
	_ = v.RegisterValidation("bookingstatus", func(fl validator.FieldLevel) bool {
		return models.BookingStatus(fl.Field().String()).IsValid()
	})
}

// BindError converts a gin binding error into a BadRequest with field issues.
func BindError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		issues := make([]apperrors.Issue, 0, len(verrs))
		for _, fe := range verrs {
			issues = append(issues, apperrors.Issue{
				Field:   fe.Field(),
				Rule:    fe.Tag(),
				Message: issueMessage(fe),
			})
		}
		return apperrors.Validation("invalid request", issues)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperrors.Validation("invalid request", []apperrors.Issue{{
			Field:   typeErr.Field,
			Rule:    "type",
			Message: fmt.Sprintf("must be a %s", typeErr.Type.String()),
		}})
	}

	var timeErr *time.ParseError
	if errors.As(err, &timeErr) {
		return apperrors.Validation("invalid request", []apperrors.Issue{{
			Rule:    "datetime",
			Message: "timestamps must be RFC 3339",
		}})
	}

	return apperrors.NewAppError(apperrors.KindBadRequest, apperrors.ErrCodeInvalidFormat, "malformed request body", err)
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "gtfield":
		return "must be after " + fe.Param()
	case "priceunit":
		return "must be hour or day"
	case "bookingstatus":
		return "must be pending, confirmed, cancelled or completed"
	case "uuid", "uuid4":
		return "must be a UUID"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// ValidateTimeRange requires start strictly before end.
func ValidateTimeRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return apperrors.BadRequest(apperrors.ErrCodeRequiredField, "startTime and endTime are required")
	}
	if !start.Before(end) {
		return apperrors.BadRequest(apperrors.ErrCodeInvalidRange, "startTime must be before endTime")
	}
	return nil
}

// NormalizeMessageText trims text and enforces the 1..MaxMessageLength character bounds.
func NormalizeMessageText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", apperrors.BadRequest(apperrors.ErrCodeRequiredField, "message text cannot be empty")
	}
	if utf8.RuneCountInString(trimmed) > models.MaxMessageLength {
		return "", apperrors.BadRequest(apperrors.ErrCodeValidation,
			fmt.Sprintf("message text cannot exceed %d characters", models.MaxMessageLength))
	}
	return trimmed, nil
}

// ValidateRating checks a 1..5 score.
func ValidateRating(field string, rating int) error {
	if rating < 1 || rating > 5 {
		return apperrors.BadRequest(apperrors.ErrCodeValidation, field+" must be between 1 and 5")
	}
	return nil
}

// ValidateCategoryRatings checks every category that is present.
func ValidateCategoryRatings(r models.CategoryRatings) error {
	for _, c := range r.Named() {
		if c.Value == nil {
			continue
		}
		if err := ValidateRating(c.Name, *c.Value); err != nil {
			return err
		}
	}
	return nil
}

// ValidateProperty checks the catalog fields pricing depends on.
func ValidateProperty(p *models.Property) error {
	if strings.TrimSpace(p.Title) == "" {
		return apperrors.BadRequest(apperrors.ErrCodeRequiredField, "title is required")
	}
	if p.Price <= 0 {
		return apperrors.BadRequest(apperrors.ErrCodeValidation, "price must be positive")
	}
	if err := p.ValidatePriceUnit(); err != nil {
		return apperrors.BadRequest(apperrors.ErrCodeValidation, "priceUnit must be hour or day")
	}
	switch p.Category {
	case models.PropertyCategoryService, models.PropertyCategoryProperty:
	default:
		return apperrors.BadRequest(apperrors.ErrCodeValidation, "category must be service or property")
	}
	return nil
}
