package taskview

import "github.com/nibzard/colortasks/internal/task"

// StyleToken is the fixed visual treatment of one color.
type StyleToken struct {
	// Class is the CSS utility class pair used by web renderers.
	Class string
	// Background and Border are hex colors for the card.
	Background string
	Border     string
	// Swatch is the dot color shown next to a group label.
	Swatch string
}

var styles = [task.NumColors]StyleToken{
	task.ColorDefault: {Class: "bg-gray-100 border-gray-200", Background: "#f3f4f6", Border: "#e5e7eb", Swatch: "#e5e7eb"},
	task.ColorRed:     {Class: "bg-red-100 border-red-200", Background: "#fee2e2", Border: "#fecaca", Swatch: "#ef4444"},
	task.ColorBlue:    {Class: "bg-blue-100 border-blue-200", Background: "#dbeafe", Border: "#bfdbfe", Swatch: "#3b82f6"},
	task.ColorGreen:   {Class: "bg-green-100 border-green-200", Background: "#dcfce7", Border: "#bbf7d0", Swatch: "#22c55e"},
	task.ColorYellow:  {Class: "bg-yellow-100 border-yellow-200", Background: "#fef9c3", Border: "#fef08a", Swatch: "#eab308"},
}

// ColorStyle returns the style token for c. Values outside the color set get
// the default token.
func ColorStyle(c task.Color) StyleToken {
	if !c.Valid() {
		return styles[task.ColorDefault]
	}
	return styles[c]
}

// StyleFor is ColorStyle for a raw stored value.
func StyleFor(value string) StyleToken {
	c, _ := task.ParseColor(value)
	return ColorStyle(c)
}
