package curve

import "math/bits"

// Checked 64-bit arithmetic. Nothing in this package is allowed to wrap or
// truncate silently; every helper fails explicitly instead.

func addChecked(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrMathOverflow
	}
	return sum, nil
}

func subChecked(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, ErrMathUnderflow
	}
	return diff, nil
}

// mulDiv computes a*b/den with the product held in a 128-bit intermediate,
// truncating the quotient toward zero. It fails if den is zero or the
// quotient does not fit in 64 bits.
func mulDiv(a, b, den uint64) (uint64, error) {
	if den == 0 {
		return 0, ErrMathOverflow
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= den {
		// bits.Div64 panics on quotient overflow; report it instead.
		return 0, ErrMathOverflow
	}
	quo, _ := bits.Div64(hi, lo, den)
	return quo, nil
}
