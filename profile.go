package brokerimport

import (
	"fmt"
	"regexp"
)

// Section declares a marker line that opens a new block of the given type.
type Section struct {
	Marker *regexp.Regexp
	Type   BlockType
}

// Profile describes one institution's document layout. It is pure data:
// the same engine interprets every profile.
//
// The catalogue of real-world profiles is maintained outside this package
// (see LoadProfile for the YAML form); the built-in ones cover the three
// institution families the test fixtures come from.
type Profile struct {
	// Name identifies the institution.
	Name string
	// Match identifies the institution in the document head.
	Match *regexp.Regexp
	// Numbers is the decimal separator convention of the institution.
	Numbers NumberFormat
	// DateLayouts are tried in order when parsing a stated date.
	DateLayouts []string
	// Cancel marks a block as a cancellation (Storno) notice.
	Cancel *regexp.Regexp
	// Sections are the markers opening blocks, checked in order per line.
	Sections []Section
	// Rules holds the ordered rule set applied to each block type.
	Rules map[BlockType][]Rule
}

// DetectProfile returns the first profile whose Match pattern recognizes the
// document text.
func DetectProfile(profiles []*Profile, text string) (*Profile, error) {
	for _, p := range profiles {
		if p.Match.MatchString(text) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no profile recognizes this document")
}
