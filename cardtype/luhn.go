package cardtype

// IsValidChecksum reports whether digits passes the Luhn (mod 10) check.
// Empty input and input with non-digit characters are invalid. The check
// misses the 09 <-> 90 adjacent transposition.
func IsValidChecksum(digits string) bool {
	if digits == "" {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}
		n := int(c - '0')
		if double {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum = (sum + n) % 10
		double = !double
	}
	return sum == 0
}
