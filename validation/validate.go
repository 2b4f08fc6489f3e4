package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var plateRegex = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z0-9][0-9]{2}$`)

func Validate(data interface{}) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return validate.Struct(data)
}

// ValidatePlate accepts Mercosul plates (AAA0A00) and the older AAA0000 layout,
// which the same pattern covers.
func ValidatePlate(plate string) bool {
	return plateRegex.MatchString(plate)
}

// NormalizePlate upper-cases a plate and removes the optional hyphen of the old layout.
func NormalizePlate(plate string) string {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	return strings.ReplaceAll(plate, "-", "")
}
