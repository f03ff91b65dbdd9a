package cardtype

import (
	"regexp"
)

// Definition describes one card network: prefix patterns over the leading
// digits and the accepted number lengths. A Definition is never modified after
// it is built.
type Definition struct {
	cardType CardType
	name     string
	patterns []*regexp.Regexp
	lengths  map[int]struct{}
}

// NewDefinition compiles the prefix patterns. Each pattern is anchored to the
// start of the number as a whole, a leading "^" is optional.
func NewDefinition(t CardType, name string, patterns []string, lengths []int) (Definition, error) {
	def := Definition{
		cardType: t,
		name:     name,
		patterns: make([]*regexp.Regexp, 0, len(patterns)),
		lengths:  make(map[int]struct{}, len(lengths)),
	}
	for _, p := range patterns {
		re, err := regexp.Compile("^(?:" + p + ")")
		if err != nil {
			return Definition{}, err
		}
		def.patterns = append(def.patterns, re)
	}
	for _, l := range lengths {
		def.lengths[l] = struct{}{}
	}
	return def, nil
}

func mustDefinition(t CardType, name string, patterns []string, lengths []int) Definition {
	def, err := NewDefinition(t, name, patterns, lengths)
	if err != nil {
		panic(err)
	}
	return def
}

func (d Definition) Type() CardType {
	return d.cardType
}

func (d Definition) Name() string {
	return d.name
}

// Patterns returns the source of the prefix patterns in match order.
func (d Definition) Patterns() []string {
	result := make([]string, 0, len(d.patterns))
	for _, re := range d.patterns {
		result = append(result, re.String())
	}
	return result
}

// AcceptsLength reports whether a number of n digits may belong to the network.
func (d Definition) AcceptsLength(n int) bool {
	_, ok := d.lengths[n]
	return ok
}

func (d Definition) matchesPrefix(digits string) bool {
	for _, re := range d.patterns {
		if re.MatchString(digits) {
			return true
		}
	}
	return false
}

func (d Definition) matches(digits string) bool {
	return d.AcceptsLength(len(digits)) && d.matchesPrefix(digits)
}

// Registry is an ordered, read-only list of definitions. Order is the
// tie-break between networks whose prefixes overlap: earlier wins.
type Registry struct {
	definitions []Definition
}

func NewRegistry(definitions ...Definition) *Registry {
	defs := make([]Definition, len(definitions))
	copy(defs, definitions)
	return &Registry{definitions: defs}
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.definitions)
}

// Definitions returns a copy of the definitions in registry order.
func (r *Registry) Definitions() []Definition {
	if r == nil {
		return nil
	}
	result := make([]Definition, len(r.definitions))
	copy(result, r.definitions)
	return result
}

func (r *Registry) Lookup(t CardType) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	for _, d := range r.definitions {
		if d.cardType == t {
			return d, true
		}
	}
	return Definition{}, false
}

func lengthRange(min, max int) []int {
	result := make([]int, 0, max-min+1)
	for l := min; l <= max; l++ {
		result = append(result, l)
	}
	return result
}

// Carte Blanche precedes Diners, Laser precedes Maestro and Visa Electron
// precedes Visa: each pair shares prefixes.
var defaultRegistry = NewRegistry(
	mustDefinition(AmericanExpress, "American Express", []string{`3[47]`}, []int{15}),
	mustDefinition(DinersCarteBlanche, "Diners Club Carte Blanche", []string{`30[0-5]`}, []int{14}),
	mustDefinition(Diners, "Diners Club", []string{`30[0-59]`, `3[689]`}, lengthRange(14, 19)),
	mustDefinition(DiscoverClub, "Discover", []string{`6011`, `64[4-9]`, `65`}, lengthRange(16, 19)),
	mustDefinition(JCB, "JCB", []string{`35(?:2[89]|[3-8][0-9])`}, lengthRange(16, 19)),
	mustDefinition(Laser, "Laser", []string{`6304`, `670[69]`, `6771`}, lengthRange(16, 19)),
	mustDefinition(Maestro, "Maestro", []string{`5[0678]`, `6304`, `6390`, `67`}, lengthRange(12, 19)),
	mustDefinition(Mastercard, "Mastercard",
		[]string{`5[1-5]`, `222[1-9]`, `22[3-9][0-9]`, `2[3-6][0-9]{2}`, `27[01][0-9]`, `2720`}, []int{16}),
	mustDefinition(VisaElectron, "Visa Electron",
		[]string{`4026`, `417500`, `4405`, `4508`, `4844`, `491[37]`}, []int{16}),
	mustDefinition(Visa, "Visa", []string{`4`}, []int{13, 16, 19}),
	mustDefinition(ChinaUnionPay, "China UnionPay", []string{`62`}, lengthRange(16, 19)),
)

// Default returns the built-in registry. It is shared and must be treated as
// read-only, which the Registry API enforces.
func Default() *Registry {
	return defaultRegistry
}
