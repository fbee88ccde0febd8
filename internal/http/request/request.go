package request

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/adopour/backend/internal/http/response"
	"github.com/adopour/backend/internal/lib"
)

var (
	registerOnce    sync.Once
	usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,30}$`)
)

// RegisterValidations installs the custom binding rules on gin's validator.
func RegisterValidations() {
	registerOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		engine.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})

		_ = engine.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = engine.RegisterValidation("communityname", func(fl validator.FieldLevel) bool {
			name := fl.Field().String()
			return name == "" || lib.IsValidCommunityName(name)
		})
		_ = engine.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
	})
}

// Bind decodes the JSON body into T and validates it. On failure the request
// is aborted with a 400 and ok is false.
func Bind[T any](c *gin.Context) (*T, bool) {
	RegisterValidations()

	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, Message(err))
		return nil, false
	}
	return &req, true
}

// BindQuery is Bind for query string parameters.
func BindQuery[T any](c *gin.Context) (*T, bool) {
	RegisterValidations()

	var req T
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, Message(err))
		return nil, false
	}
	return &req, true
}

// Message turns a binding error into a short client-facing sentence.
func Message(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return "invalid request body"
	}

	fieldError := validationErrors[0]
	field := fieldError.Field()
	switch fieldError.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fieldError.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fieldError.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fieldError.Param())
	case "communityname":
		return fmt.Sprintf("%s may only contain lowercase letters, numbers and dashes", field)
	case "username":
		return fmt.Sprintf("%s must be 3-30 lowercase letters, numbers or underscores", field)
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid id", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
