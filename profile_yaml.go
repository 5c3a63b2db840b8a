package brokerimport

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// The YAML profile form mirrors the Profile struct with patterns as strings.
// Institutions change their layouts without notice, so profiles must be
// maintainable as data, outside a release cycle.
type yprofile struct {
	Name        string             `yaml:"name"`
	Match       string             `yaml:"match"`
	Numbers     string             `yaml:"numbers"` // "point" or "comma"
	DateLayouts []string           `yaml:"dateLayouts"`
	Cancel      string             `yaml:"cancel"`
	Sections    []ysection         `yaml:"sections"`
	Rules       map[string][]yrule `yaml:"rules"`
}

type ysection struct {
	Marker string `yaml:"marker"`
	Type   string `yaml:"type"`
}

type yrule struct {
	Pattern string `yaml:"pattern"`
	Repeat  bool   `yaml:"repeat"`
}

// blockTypes is the closed set of block types a profile may declare.
var blockTypes = map[string]BlockType{
	string(BlockBuy):        BlockBuy,
	string(BlockSell):       BlockSell,
	string(BlockDividend):   BlockDividend,
	string(BlockInterest):   BlockInterest,
	string(BlockDeposit):    BlockDeposit,
	string(BlockWithdrawal): BlockWithdrawal,
	string(BlockFee):        BlockFee,
	string(BlockTax):        BlockTax,
	string(BlockTaxRefund):  BlockTaxRefund,
	string(BlockRemoval):    BlockRemoval,
}

// LoadProfile reads one institution profile in YAML form, compiling every
// pattern. A profile that fails to compile is rejected as a whole.
func LoadProfile(r io.Reader) (*Profile, error) {
	var y yprofile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&y); err != nil {
		return nil, fmt.Errorf("cannot decode profile: %w", err)
	}
	if y.Name == "" {
		return nil, fmt.Errorf("profile has no name")
	}

	p := &Profile{
		Name:        y.Name,
		DateLayouts: y.DateLayouts,
		Rules:       make(map[BlockType][]Rule),
	}

	var err error
	if p.Match, err = compile(y.Name, "match", y.Match); err != nil {
		return nil, err
	}
	switch y.Numbers {
	case "point", "":
		p.Numbers = PointDecimal
	case "comma":
		p.Numbers = CommaDecimal
	default:
		return nil, fmt.Errorf("profile %s: unknown number format %q", y.Name, y.Numbers)
	}
	if len(p.DateLayouts) == 0 {
		return nil, fmt.Errorf("profile %s: no date layouts", y.Name)
	}
	if y.Cancel != "" {
		if p.Cancel, err = compile(y.Name, "cancel", y.Cancel); err != nil {
			return nil, err
		}
	}

	for _, s := range y.Sections {
		typ, ok := blockTypes[s.Type]
		if !ok {
			return nil, fmt.Errorf("profile %s: unknown block type %q", y.Name, s.Type)
		}
		marker, err := compile(y.Name, "section "+s.Type, s.Marker)
		if err != nil {
			return nil, err
		}
		p.Sections = append(p.Sections, Section{Marker: marker, Type: typ})
	}
	if len(p.Sections) == 0 {
		return nil, fmt.Errorf("profile %s: no sections", y.Name)
	}

	for name, yrules := range y.Rules {
		typ, ok := blockTypes[name]
		if !ok {
			return nil, fmt.Errorf("profile %s: rules for unknown block type %q", y.Name, name)
		}
		for i, yr := range yrules {
			pattern, err := compile(y.Name, fmt.Sprintf("rule %s[%d]", name, i), yr.Pattern)
			if err != nil {
				return nil, err
			}
			p.Rules[typ] = append(p.Rules[typ], Rule{Pattern: pattern, Repeat: yr.Repeat})
		}
	}
	return p, nil
}

// LoadProfiles reads a stream of YAML documents, one profile each.
func LoadProfiles(r io.Reader) ([]*Profile, error) {
	// yaml.v3 surfaces multi-document streams one Decode at a time, but
	// KnownFields is per decoder, so split on the document level instead.
	var docs []yaml.Node
	dec := yaml.NewDecoder(r)
	for {
		var n yaml.Node
		if err := dec.Decode(&n); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("cannot decode profiles: %w", err)
		}
		docs = append(docs, n)
	}
	var profiles []*Profile
	for _, n := range docs {
		raw, err := yaml.Marshal(&n)
		if err != nil {
			return nil, err
		}
		p, err := LoadProfile(strings.NewReader(string(raw)))
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func compile(profile, what, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("profile %s: %s pattern is empty", profile, what)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %s pattern: %w", profile, what, err)
	}
	return re, nil
}
