// Package validate contains custom validation functions
package validate

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	passwordvalidator "github.com/wagslane/go-password-validator"
)

// RollNo is a custom validation function that is used to validate the roll number
func RollNo(fl validator.FieldLevel) bool {
	regex, err := regexp.Compile(`^[a-zA-Z0-9]{4,20}$`)
	if err != nil {
		return false
	}

	rollNo := fl.Field().String()
	return regex.MatchString(rollNo)
}

// Password is custom validation function that is used to validate passwords
func Password(fl validator.FieldLevel) bool {
	const minEntropy = 40
	password := fl.Field().String()

	err := passwordvalidator.Validate(password, minEntropy)
	return err == nil
}
