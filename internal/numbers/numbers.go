// Package numbers provides arithmetic and formatting helpers.
package numbers

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/viant/xlate/internal/debug"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Sum adds all values.
func Sum(values ...float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// Round rounds value to the given number of decimals.
func Round(value float64, decimals int) float64 {
	if decimals < 0 {
		decimals = 0
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(value, 'f', decimals, 64), 64)
	if err != nil {
		return value
	}
	return rounded
}

// Random returns an integer in [min, max].
func Random(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + rand.IntN(max-min+1)
}

// Percentage returns smaller as a percentage of larger rounded to two decimals.
// It reports through the debug error reporter and returns false when smaller is
// not strictly below larger.
func Percentage(smaller, larger float64) (float64, bool) {
	if smaller >= larger {
		debug.Error("Calculate percentage", "the second number must be greater than the first")
		return 0, false
	}
	return Round(smaller/larger*100, 2), true
}

// Currency formats value with the rounding of the ISO currency code and the
// digit grouping of tag, without the currency symbol.
func Currency(value float64, code string, tag language.Tag) (string, bool) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		debug.Error("Format currency", "error formatting number as currency:", err)
		return "", false
	}
	scale, _ := currency.Standard.Rounding(unit)
	return message.NewPrinter(tag).Sprint(number.Decimal(value, number.Scale(scale))), true
}

// IsValid reports whether input converts to a finite number.
func IsValid(input any) bool {
	switch v := input.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return isFinite(float64(v))
	case float64:
		return isFinite(v)
	case bool:
		return true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return true
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		return err == nil && isFinite(f)
	default:
		return false
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
