package helper

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	phonePattern   = regexp.MustCompile(`^\d{10}$`)
	pincodePattern = regexp.MustCompile(`^\d{6}$`)
)

// RegisterValidators installs the custom binding rules used by request
// structs. Called once from main.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("pincode6", func(fl validator.FieldLevel) bool {
		return pincodePattern.MatchString(fl.Field().String())
	})
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "phone10":
		return "must be exactly 10 digits"
	case "pincode6":
		return "must be exactly 6 digits"
	default:
		return fmt.Sprintf("failed rule %q", fe.Tag())
	}
}

// BindJSON binds the request body into obj. On failure it writes a 400 with
// field-level errors and returns false; the handler should just return.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]FieldError, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, FieldError{Field: fe.Field(), Message: fieldErrorMessage(fe)})
			}
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Validation failed", "errors": fields})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return false
	}
	return true
}
