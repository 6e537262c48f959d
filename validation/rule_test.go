package validation

import (
	"errors"
	"strconv"
	"testing"
	"testing/quick"

	"github.com/jhump/annosynth"
)

func TestRuleCheck(t *testing.T) {
	cases := []struct {
		typ   annosynth.NumericType
		zero  bool
		value string
		want  error
	}{
		{annosynth.Decimal, true, "10.50", nil},
		{annosynth.Decimal, true, "0", ErrInvalid},
		{annosynth.Decimal, true, "-0.01", ErrInvalid},
		{annosynth.Decimal, false, "0", nil},
		{annosynth.Decimal, false, "-3", nil},
		{annosynth.Decimal, false, "abc", ErrInvalid},
		{annosynth.Decimal, false, "1,234.5", nil},
		{annosynth.Decimal, false, "1e3", ErrInvalid},
		{annosynth.Decimal, false, "NaN", ErrInvalid},
		{annosynth.Decimal, false, "79228162514264337593543950335", nil},
		{annosynth.Decimal, false, "79228162514264337593543950336", ErrInvalid},
		{annosynth.Decimal, false, "  42  ", nil},
		{annosynth.Int32, true, "1", nil},
		{annosynth.Int32, true, "0", ErrInvalid},
		{annosynth.Int32, false, "+7", nil},
		{annosynth.Int32, false, "1.5", ErrInvalid},
		{annosynth.Int32, false, "2147483647", nil},
		{annosynth.Int32, false, "2147483648", ErrInvalid},
		{annosynth.Int64, false, "2147483648", nil},
		{annosynth.Int64, false, "9223372036854775808", ErrInvalid},
		{annosynth.Double, true, "1e-3", nil},
		{annosynth.Double, true, "-1e-3", ErrInvalid},
		{annosynth.Double, false, "1,000.25", nil},
		{annosynth.Double, false, "0x10", ErrInvalid},
		{annosynth.Double, false, "1_000", ErrInvalid},
		{annosynth.Double, false, "1e400", nil},
		{annosynth.Double, false, "", ErrRequired},
		{annosynth.Unsupported, false, "1", ErrInvalid},
	}
	for _, c := range cases {
		r := Rule{Type: c.typ, ZeroCheck: c.zero}
		v := c.value
		if err := r.Check(&v); !errors.Is(err, c.want) {
			t.Errorf("%v (zero=%v) Check(%q) = %v; want %v", c.typ, c.zero, c.value, err, c.want)
		}
	}
}

func TestRuleCheckNull(t *testing.T) {
	for _, typ := range []annosynth.NumericType{annosynth.Decimal, annosynth.Int32, annosynth.Double, annosynth.Int64} {
		if err := (Rule{Type: typ, ZeroCheck: true}).Check(nil); err != ErrRequired {
			t.Errorf("%v: Check(nil) = %v; want %v", typ, err, ErrRequired)
		}
	}
}

func TestRuleZeroCheckProperty(t *testing.T) {
	withZero := Rule{Type: annosynth.Int64, ZeroCheck: true}
	without := Rule{Type: annosynth.Int64}
	f := func(n int64) bool {
		s := strconv.FormatInt(n, 10)
		if without.Check(&s) != nil {
			return false
		}
		err := withZero.Check(&s)
		if n <= 0 {
			return err == ErrInvalid
		}
		return err == nil
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}
