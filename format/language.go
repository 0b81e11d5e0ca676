package format

// ColorTag is the decorative colour of a language: a css class for the web panel
// and the matching hex value for terminals
type ColorTag struct {
	Class string
	Hex   string
}

var DefaultColor = ColorTag{Class: "bg-gray-500", Hex: "#6b7280"}

var languageColors = map[string]ColorTag{
	"JavaScript": {Class: "bg-yellow-400", Hex: "#facc15"},
	"TypeScript": {Class: "bg-blue-500", Hex: "#3b82f6"},
	"Python":     {Class: "bg-blue-600", Hex: "#2563eb"},
	"HTML":       {Class: "bg-orange-500", Hex: "#f97316"},
	"CSS":        {Class: "bg-purple-500", Hex: "#a855f7"},
	"Go":         {Class: "bg-cyan-500", Hex: "#06b6d4"},
	"C":          {Class: "bg-gray-600", Hex: "#4b5563"},
	"C#":         {Class: "bg-green-600", Hex: "#16a34a"},
	"C++":        {Class: "bg-pink-600", Hex: "#db2777"},
	"Java":       {Class: "bg-red-600", Hex: "#dc2626"},
	"PHP":        {Class: "bg-indigo-600", Hex: "#4f46e5"},
	"Ruby":       {Class: "bg-red-500", Hex: "#ef4444"},
	"Rust":       {Class: "bg-orange-600", Hex: "#ea580c"},
	"Shell":      {Class: "bg-green-500", Hex: "#22c55e"},
}

// LanguageColor returns the colour of a language, DefaultColor when unknown or empty.
// Names are matched exactly as github reports them.
func LanguageColor(language string) ColorTag {
	if c, found := languageColors[language]; found {
		return c
	}

	return DefaultColor
}
