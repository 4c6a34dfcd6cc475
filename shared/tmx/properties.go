package tmx

import (
	"strconv"
	"strings"
)

// Property is a custom property attached to a map, layer, tileset, tile or
// object.
type Property struct {
	Name  string `xml:"name,attr"`
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
	Body  string `xml:",chardata"`
}

func (p Property) value() string {
	if p.Value != "" {
		return p.Value
	}
	// multi-line strings are stored as element text
	return strings.TrimSpace(p.Body)
}

// Properties is an ordered property list.
type Properties []Property

type xmlProperties struct {
	Property []Property `xml:"property"`
}

func (p *xmlProperties) list() Properties {
	if p == nil {
		return nil
	}
	return Properties(p.Property)
}

// Has reports whether a property with the given name exists.
func (ps Properties) Has(name string) bool {
	_, ok := ps.lookup(name)
	return ok
}

func (ps Properties) lookup(name string) (string, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p.value(), true
		}
	}
	return "", false
}

// GetString returns the named property or "".
func (ps Properties) GetString(name string) string {
	v, _ := ps.lookup(name)
	return v
}

// GetInt returns the named property as an int, 0 when absent or not numeric.
func (ps Properties) GetInt(name string) int {
	v, _ := ps.lookup(name)
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// GetFloat returns the named property as a float64, 0 when absent or not numeric.
func (ps Properties) GetFloat(name string) float64 {
	v, _ := ps.lookup(name)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// GetBool returns the named property as a bool, false when absent.
func (ps Properties) GetBool(name string) bool {
	v, _ := ps.lookup(name)
	b, _ := strconv.ParseBool(v)
	return b
}

// LookupBool returns the named bool property and whether it was set.
func (ps Properties) LookupBool(name string) (value, ok bool) {
	v, ok := ps.lookup(name)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}
