package task

import "strings"

// Color is the tag attached to every task. The set is closed; the zero value
// is ColorDefault.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorBlue
	ColorGreen
	ColorYellow

	// NumColors is the number of defined colors.
	NumColors = int(ColorYellow) + 1
)

// ColorOption describes one selectable color.
type ColorOption struct {
	Value Color
	Label string
}

var colorNames = [NumColors]string{
	ColorDefault: "default",
	ColorRed:     "red",
	ColorBlue:    "blue",
	ColorGreen:   "green",
	ColorYellow:  "yellow",
}

var colorLabels = [NumColors]string{
	ColorDefault: "Default",
	ColorRed:     "Red",
	ColorBlue:    "Blue",
	ColorGreen:   "Green",
	ColorYellow:  "Yellow",
}

// ColorOptions returns the selectable colors in enumeration order.
func ColorOptions() []ColorOption {
	opts := make([]ColorOption, NumColors)
	for i := range opts {
		c := Color(i)
		opts[i] = ColorOption{Value: c, Label: c.Label()}
	}
	return opts
}

// Valid reports whether c is one of the defined colors.
func (c Color) Valid() bool {
	return int(c) < NumColors
}

// String returns the stored value of the color ("red", "blue", ...).
// Out-of-range values render as "default".
func (c Color) String() string {
	if !c.Valid() {
		return colorNames[ColorDefault]
	}
	return colorNames[c]
}

// Label returns the display label of the color.
func (c Color) Label() string {
	if !c.Valid() {
		return colorLabels[ColorDefault]
	}
	return colorLabels[c]
}

// ParseColor parses a stored color value, case-insensitively.
// Unknown values yield ColorDefault and false.
func ParseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range colorNames {
		if name == s {
			return Color(i), true
		}
	}
	return ColorDefault, false
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown values degrade to
// ColorDefault instead of failing.
func (c *Color) UnmarshalText(text []byte) error {
	*c, _ = ParseColor(string(text))
	return nil
}
