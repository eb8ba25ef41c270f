// Package events fills the event import workbook with comments looked up in
// the record tables produced by the loader.
package events

import "strings"

// Table origins reported with a match.
const (
	FromToyopuc     = "Toyopuc"
	FromScreenWorks = "ScreenWorks"
)

// Tables holds the loaded address to comment maps. A nil map means that
// table file was not present.
type Tables struct {
	Toyopuc     map[string]string
	ScreenWorks map[string]string
}

// Matcher resolves template addresses against the tables.
type Matcher struct {
	Tables Tables
	Noise  *NoiseFilter

	// Bypass accepts comments rejected by Noise when nothing better exists.
	Bypass bool
}

// Match is one resolved comment.
type Match struct {
	Comment string
	From    string
}

// Lookup finds the comment for address. Toyopuc comments are preferred; a
// ScreenWorks comment is used when Toyopuc has none that passes the noise
// filter.
func (m *Matcher) Lookup(address string) (Match, bool) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Match{}, false
	}

	searched := SearchAddress(address)

	toyo, toyoOK := m.Tables.Toyopuc[searched]
	sw, swOK := m.Tables.ScreenWorks[ScreenWorksAddress(searched)]

	switch {
	case toyoOK && m.Noise.Allowed(toyo):
		return Match{Comment: toyo, From: FromToyopuc}, true
	case swOK && m.Noise.Allowed(sw):
		return Match{Comment: sw, From: FromScreenWorks}, true
	}

	if m.Bypass {
		switch {
		case toyoOK:
			return Match{Comment: toyo, From: FromToyopuc}, true
		case swOK:
			return Match{Comment: sw, From: FromScreenWorks}, true
		}
	}
	return Match{}, false
}

// SearchAddress expands short template addresses: four-character addresses
// live under the "P1-" program prefix in the exports.
func SearchAddress(address string) string {
	if len([]rune(address)) == 4 {
		return "P1-" + address
	}
	return address
}

// ScreenWorksAddress removes the first '0' from addresses longer than five
// characters, unless that zero is among the last three characters.
// ScreenWorks drops the leading zero of the device number.
func ScreenWorksAddress(address string) string {
	r := []rune(address)
	if len(r) <= 5 {
		return address
	}
	for i, c := range r {
		if c != '0' {
			continue
		}
		if i < len(r)-3 {
			return string(r[:i]) + string(r[i+1:])
		}
		return address
	}
	return address
}
