// Package extract implements schema-driven field extraction from HTML listings.
//
// A Schema names the repeating "card" element of a listing page and, for each
// output field, how to locate it inside the card and what to read from it.
package extract

import "fmt"

// Mode selects what is read from the element a field selector matches
type Mode int

const (
	// Text reads the trimmed visible text of the element
	Text Mode = iota
	// Attribute reads a named attribute of the element
	Attribute
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case Text:
		return "text"
	case Attribute:
		return "attribute"
	default:
		return "unknown"
	}
}

// Field describes how to find one field in a card. Fields are immutable and
// defined once per adapter.
type Field struct {
	Name     string
	Selector string
	Mode     Mode
	Attr     string
}

// TextField builds a Text-mode field
func TextField(name, selector string) Field {
	return Field{Name: name, Selector: selector, Mode: Text}
}

// AttrField builds an Attribute-mode field
func AttrField(name, selector, attr string) Field {
	return Field{Name: name, Selector: selector, Mode: Attribute, Attr: attr}
}

// Schema is the extraction plan for one listing page
type Schema struct {
	Name         string
	BaseSelector string
	Fields       []Field
}

// Validate reports schema definitions that can never extract anything
func (s Schema) Validate() error {
	if s.BaseSelector == "" {
		return fmt.Errorf("schema %q: base selector is empty", s.Name)
	}
	seen := make(map[string]bool, len(s.Fields))
	for i, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("schema %q: field %d has no name", s.Name, i)
		}
		if seen[f.Name] {
			return fmt.Errorf("schema %q: duplicate field %q", s.Name, f.Name)
		}
		seen[f.Name] = true
		if f.Mode == Attribute && f.Attr == "" {
			return fmt.Errorf("schema %q: field %q uses attribute mode without an attribute name", s.Name, f.Name)
		}
	}
	return nil
}
