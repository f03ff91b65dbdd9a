package cardtype

// Classify returns the type of the first definition in r whose prefix pattern
// and length both accept digits. Input containing anything but 0-9 never
// matches.
func Classify(r *Registry, digits string) (CardType, bool) {
	if r == nil || digits == "" || !onlyDigits(digits) {
		return None, false
	}
	for _, d := range r.definitions {
		if d.matches(digits) {
			return d.cardType, true
		}
	}
	return None, false
}

func onlyDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
