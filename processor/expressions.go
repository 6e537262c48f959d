package processor

import (
	"fmt"
	"go/constant"
	"math"
	"strconv"
	"strings"
)

// ConstantText returns the text form of a compile-time constant, the same
// text the host runtime produces when converting the value to a string:
// strings as-is, booleans as "True" or "False", integers in decimal and
// floating point numbers in their shortest round-trip form. Constants of
// unknown or complex kind are rejected.
func ConstantText(v constant.Value) (string, error) {
	if v == nil {
		return "", ErrNoConstantValue
	}
	switch v.Kind() {
	case constant.String:
		return constant.StringVal(v), nil
	case constant.Bool:
		if constant.BoolVal(v) {
			return "True", nil
		}
		return "False", nil
	case constant.Int:
		return v.ExactString(), nil
	case constant.Float:
		f, _ := constant.Float64Val(v)
		return formatDouble(f), nil
	case constant.Unknown:
		return "", ErrNoConstantValue
	default:
		return "", fmt.Errorf("unsupported constant kind %v", v.Kind())
	}
}

// formatDouble formats f the way a round-trip double-to-string conversion
// does: fixed notation for decimal exponents in [-4, 15), scientific with
// an upper-case, signed, at least two-digit exponent otherwise.
func formatDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "∞"
	case math.IsInf(f, -1):
		return "-∞"
	case f == 0:
		return "0"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, expText, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expText)
	if exp >= -4 && exp < 15 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	sign := "+"
	if exp < 0 {
		sign = "-"
		exp = -exp
	}
	return fmt.Sprintf("%sE%s%02d", mantissa, sign, exp)
}
