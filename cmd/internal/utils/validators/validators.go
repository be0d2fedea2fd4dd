package validators

import (
	"unicode"

	"instime/cmd/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

// Register installs the custom tags used by the request structs.
func Register(validate *validator.Validate) {
	_ = validate.RegisterValidation("hasletter", HasLetter)
	_ = validate.RegisterValidation("hasdigit", HasDigit)
	_ = validate.RegisterValidation("nospaces", NoWhiteSpaces)
	_ = validate.RegisterValidation("taskstatus", IsTaskStatus)
}

func HasLetter(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func HasDigit(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func NoWhiteSpaces(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func IsTaskStatus(fl validator.FieldLevel) bool {
	return entity.TaskStatus(fl.Field().String()).Valid()
}
