package validation

import (
	"errors"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"github.com/jhump/annosynth"
)

var (
	// ErrRequired is the result of checking a null or empty value.
	ErrRequired = errors.New("is required")
	// ErrInvalid is the result of checking a value that does not parse or
	// that breaks the zero value rule.
	ErrInvalid = errors.New("is invalid")
)

// Rule is an executable model of a generated validation attribute. It
// applies the same checks, in the same order, as the generated IsValid
// method, using parse rules that follow the host's default number styles:
// integers allow surrounding white space and a leading sign; doubles also
// allow a decimal point, an exponent and thousands separators; decimals
// allow a decimal point and thousands separators but no exponent.
type Rule struct {
	Type      annosynth.NumericType
	ZeroCheck bool
}

// Check validates a value given in string form. A nil value stands for null.
func (r Rule) Check(value *string) error {
	if value == nil || *value == "" {
		return ErrRequired
	}
	nonPositive, ok := r.parse(*value)
	if !ok {
		return ErrInvalid
	}
	if r.ZeroCheck && nonPositive {
		return ErrInvalid
	}
	return nil
}

// parse reports whether s parses as the rule's type and, if so, whether the
// parsed value is <= 0.
func (r Rule) parse(s string) (nonPositive bool, ok bool) {
	s = strings.TrimSpace(s)
	switch r.Type {
	case annosynth.Int32, annosynth.Int64:
		bits := 32
		if r.Type == annosynth.Int64 {
			bits = 64
		}
		v, err := strconv.ParseInt(s, 10, bits)
		if err != nil {
			return false, false
		}
		return v <= 0, true

	case annosynth.Double:
		s = stripThousands(s)
		if strings.HasPrefix(strings.TrimLeft(s, "+-"), "0x") || strings.Contains(s, "_") {
			return false, false
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return false, false
		}
		return v <= 0, true

	case annosynth.Decimal:
		s = stripThousands(s)
		if strings.ContainsAny(s, "eE") {
			return false, false
		}
		d, _, err := apd.NewFromString(s)
		if err != nil || d.Form != apd.Finite {
			return false, false
		}
		var abs apd.Decimal
		abs.Abs(d)
		if abs.Cmp(decimalLimit) > 0 {
			return false, false
		}
		return d.Sign() <= 0, true

	default:
		return false, false
	}
}

// decimalLimit is the largest magnitude a 96-bit decimal can hold.
var decimalLimit = mustDecimal("79228162514264337593543950335")

func mustDecimal(s string) *apd.Decimal {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// stripThousands removes group separators that sit between digits.
func stripThousands(s string) string {
	if !strings.Contains(s, ",") {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == ',' && i > 0 && i+1 < len(s) && isDigit(s[i-1]) && isDigit(s[i+1]) {
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
