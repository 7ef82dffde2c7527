package designs

// paletteTable maps the wizard's color scheme choice to a concrete palette.
// Used by the fallback generator and as a hint in the AI prompt.
var paletteTable = map[string]ColorPalette{
	"yellowBlack": {
		Primary:    "#FFD100",
		Secondary:  "#1A1A1A",
		Accent:     "#F5B800",
		Background: "#FFFFFF",
		Text:       "#1A1A1A",
	},
	"blueWhite": {
		Primary:    "#1E5AA8",
		Secondary:  "#FFFFFF",
		Accent:     "#3D8BFD",
		Background: "#F7FAFF",
		Text:       "#16243A",
	},
	"greenNature": {
		Primary:    "#2E7D32",
		Secondary:  "#8D6E63",
		Accent:     "#AED581",
		Background: "#F9FBF4",
		Text:       "#1B2E1C",
	},
	"monochrome": {
		Primary:    "#222222",
		Secondary:  "#555555",
		Accent:     "#999999",
		Background: "#FAFAFA",
		Text:       "#111111",
	},
	"purpleLuxury": {
		Primary:    "#5E35B1",
		Secondary:  "#D1C4E9",
		Accent:     "#FFD54F",
		Background: "#FBFAFF",
		Text:       "#2A1A4A",
	},
	"redEnergy": {
		Primary:    "#C62828",
		Secondary:  "#263238",
		Accent:     "#FF7043",
		Background: "#FFFFFF",
		Text:       "#1C1C1C",
	},
	"oceanTeal": {
		Primary:    "#00796B",
		Secondary:  "#004D40",
		Accent:     "#4DB6AC",
		Background: "#F2FBFA",
		Text:       "#0B2A26",
	},
	"warmNeutral": {
		Primary:    "#A1887F",
		Secondary:  "#6D4C41",
		Accent:     "#FFB74D",
		Background: "#FCF8F3",
		Text:       "#32241C",
	},
}

const defaultScheme = "blueWhite"

// PaletteFor returns the palette for a scheme, falling back to the default
// scheme for unknown keys.
func PaletteFor(scheme string) ColorPalette {
	if p, ok := paletteTable[scheme]; ok {
		return p
	}
	return paletteTable[defaultScheme]
}
