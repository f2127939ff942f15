package ranges

import (
	"sync"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// categoryNames lists the general categories the registry exposes, in the
// order they are documented.
var categoryNames = []string{
	"L", "Lu", "Ll", "Lt", "Lm", "Lo",
	"M", "Mn", "Mc", "Me",
	"N", "Nd", "Nl", "No",
	"P", "Pc", "Pd", "Ps", "Pe", "Pi", "Pf", "Po",
	"S", "Sm", "Sc", "Sk", "So",
	"Z", "Zs", "Zl", "Zp",
	"C", "Cc", "Cf", "Co", "Cs", "Cn",
}

// registry maps every known range name to its set. It is built once on first
// use and never modified afterwards.
var registry = sync.OnceValue(buildRegistry)

func buildRegistry() map[string]*Set {
	m := make(map[string]*Set, len(categoryNames)+len(blocks)+8)
	for _, name := range categoryNames {
		if t, ok := unicode.Categories[name]; ok {
			m[name] = FromTable(t)
		}
	}

	assigned := FromTable(rangetable.Assigned(unicode.Version))
	if assigned.IsEmpty() {
		// x/text has no table for this Unicode version; every category but
		// Cn together is the assigned set.
		assigned = &Set{}
		for _, name := range []string{"L", "M", "N", "P", "S", "Z", "C"} {
			assigned = assigned.Union(m[name])
		}
	}
	unassigned := assigned.Complement()
	m["Cn"] = unassigned
	m["C"] = m["C"].Union(unassigned)
	m["L&"] = m["Lu"].Union(m["Ll"]).Union(m["Lt"])

	m["ALL"] = All()
	m["ASSIGNED"] = assigned
	m["UNASSIGNED"] = unassigned
	m["ASCII"] = New(Range{0, 0x7F})

	for _, b := range blocks {
		m["Is"+b.name] = New(b.r...)
	}
	return m
}

// Lookup returns the set registered under name. Names are case-sensitive:
// general categories ("Lu", "Nd", "L&"), blocks ("IsBasicLatin") and the
// pseudo-ranges ALL, ASSIGNED, UNASSIGNED and ASCII. The returned set is
// shared and must be treated as read-only.
func Lookup(name string) (*Set, bool) {
	s, ok := registry()[name]
	return s, ok
}

// MustLookup is like Lookup but panics if name is unknown.
// It is meant for names fixed at build time.
func MustLookup(name string) *Set {
	s, ok := Lookup(name)
	if !ok {
		panic("ranges: unknown range name " + name)
	}
	return s
}
