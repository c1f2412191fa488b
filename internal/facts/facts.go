// Package facts holds the known-property table consulted by the linter:
// standard CSS property names, the vendor-prefixed forms each property is
// known with, keyframes at-rule variants and the recognized length units.
//
// The table is decoded once from embedded YAML and is read-only afterwards,
// so it can be shared by any number of concurrent lint runs.
package facts

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed properties.yaml
var propertiesYAML []byte

// Prefixes are the vendor prefixes considered for vendor-prefix completeness,
// in the order their variants are reported.
var Prefixes = []string{"-ms-", "-moz-", "-o-", "-webkit-"}

// Property is one entry of the known-property table.
type Property struct {
	Name    string   `yaml:"name"`
	Vendors []string `yaml:"vendors"`
}

type document struct {
	Properties []Property `yaml:"properties"`
	VendorOnly []string   `yaml:"vendorOnly"`
	AtRules    []Property `yaml:"atRules"`
	Units      struct {
		Length []string `yaml:"length"`
	} `yaml:"units"`
}

// Table is the decoded, immutable known-property table.
type Table struct {
	properties map[string]bool
	atRules    map[string][]string
	length     map[string]bool
}

var (
	defaultTable *Table
	loadOnce     sync.Once
)

// Default returns the process-wide table built from the embedded data.
// It panics if the embedded data is malformed, which is a build defect.
func Default() *Table {
	loadOnce.Do(func() {
		t, err := Load(propertiesYAML)
		if err != nil {
			panic(fmt.Sprintf("facts: embedded properties.yaml: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// Load decodes a property table from YAML.
func Load(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode property table: %w", err)
	}

	t := &Table{
		properties: make(map[string]bool, len(doc.Properties)*2),
		atRules:    make(map[string][]string, len(doc.AtRules)),
		length:     make(map[string]bool, len(doc.Units.Length)),
	}
	for _, p := range doc.Properties {
		name := strings.ToLower(p.Name)
		t.properties[name] = true
		for _, v := range p.Vendors {
			t.properties["-"+strings.ToLower(v)+"-"+name] = true
		}
	}
	for _, name := range doc.VendorOnly {
		t.properties[strings.ToLower(name)] = true
	}
	for _, r := range doc.AtRules {
		name := strings.ToLower(r.Name)
		bare := strings.TrimPrefix(name, "@")
		variants := make([]string, 0, len(r.Vendors))
		for _, v := range r.Vendors {
			variants = append(variants, "@-"+strings.ToLower(v)+"-"+bare)
		}
		t.atRules[name] = variants
	}
	for _, u := range doc.Units.Length {
		t.length[strings.ToLower(u)] = true
	}
	return t, nil
}

// IsKnownProperty reports whether name is a standard property or one of its
// known vendor-prefixed forms. The lookup is case-insensitive.
func (t *Table) IsKnownProperty(name string) bool {
	return t.properties[strings.ToLower(name)]
}

// AtRuleVariants returns the vendor-prefixed variants of an at-rule keyword
// such as "@keyframes". Unknown keywords have no variants.
func (t *Table) AtRuleVariants(keyword string) []string {
	v := t.atRules[strings.ToLower(keyword)]
	out := make([]string, len(v))
	copy(out, v)
	return out
}

// KeyframesVariants returns the vendor variants of @keyframes.
func (t *Table) KeyframesVariants() []string {
	return t.AtRuleVariants("@keyframes")
}

// IsLengthUnit reports whether unit is a recognized length unit.
func (t *Table) IsLengthUnit(unit string) bool {
	return t.length[strings.ToLower(unit)]
}

// VendorVariants returns the prefixed forms of a standard property that the
// table knows about, ordered like Prefixes.
func (t *Table) VendorVariants(name string) []string {
	var out []string
	for _, prefix := range Prefixes {
		if t.IsKnownProperty(prefix + name) {
			out = append(out, prefix+name)
		}
	}
	return out
}
