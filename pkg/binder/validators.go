package binder

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// DateDMYLayout is the layout accepted by the date_dmy validator.
const DateDMYLayout = "02-01-2006"

// dateDMYValidator ensures the value is a real calendar date in the format
// DD-MM-YYYY.
func dateDMYValidator(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateDMYLayout, fl.Field().String())
	return err == nil
}

// flagValidator ensures the value is a boolean literal. Status tokens have
// already been turned into 1 or 0 by the status_token modifier.
func flagValidator(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "1", "0", "true", "false":
		return true
	default:
		return false
	}
}
