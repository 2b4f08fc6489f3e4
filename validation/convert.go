package validation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ErrInvalidFipeValue = errors.New("valor FIPE inválido")

var (
	nonNumeric = regexp.MustCompile(`[^\d.,]`)
	brlPrinter = message.NewPrinter(language.BrazilianPortuguese)
)

const zeroBRL = "R$ 0,00"

// ParseFipeValue turns the FIPE price string returned by the plate service
// ("R$ 45.000,00") into a number. When a decimal comma is present the dots are
// thousands separators; otherwise the text is read as a plain decimal number.
func ParseFipeValue(text string) (float64, error) {
	clean := nonNumeric.ReplaceAllString(text, "")
	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	}
	if clean == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFipeValue, text)
	}

	value, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFipeValue, text)
	}
	return value, nil
}

// FormatBRL renders a number as Brazilian Reais. Anything that is not a finite
// number is shown as R$ 0,00.
func FormatBRL(value interface{}) string {
	var v float64
	switch n := value.(type) {
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		v = float64(n)
	case int8:
		v = float64(n)
	case int16:
		v = float64(n)
	case int32:
		v = float64(n)
	case int64:
		v = float64(n)
	case uint:
		v = float64(n)
	case uint8:
		v = float64(n)
	case uint16:
		v = float64(n)
	case uint32:
		v = float64(n)
	case uint64:
		v = float64(n)
	default:
		return zeroBRL
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return zeroBRL
	}

	if v < 0 {
		return "-R$ " + brlPrinter.Sprint(number.Decimal(-v, number.Scale(2)))
	}
	return "R$ " + brlPrinter.Sprint(number.Decimal(v, number.Scale(2)))
}
