package hypermedia

import (
	"fmt"
	"strings"
)

// Type selects a hypermedia format at configuration time
type Type int

const (
	// HAL is the Hypertext Application Language
	HAL Type = iota + 1
)

var typeNames = map[Type]string{
	HAL: "HAL",
}

var typeMediaTypes = map[Type]MediaType{
	HAL: HALJSON,
}

// String returns the selector name
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Supported reports whether the selector names a known hypermedia type
func (t Type) Supported() bool {
	_, ok := typeNames[t]
	return ok
}

// MediaType returns the media type served for this hypermedia type
func (t Type) MediaType() (MediaType, error) {
	mt, ok := typeMediaTypes[t]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
	return mt, nil
}

// ParseType parses a selector name such as "hal" (case-insensitive)
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedType, name)
}

// ParseTypes parses a list of selector names
func ParseTypes(names []string) ([]Type, error) {
	types := make([]Type, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		t, err := ParseType(name)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// UnmarshalText implements encoding.TextUnmarshaler so selectors can be read
// from YAML and JSON configuration.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (t Type) MarshalText() ([]byte, error) {
	if !t.Supported() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
	return []byte(strings.ToLower(t.String())), nil
}
