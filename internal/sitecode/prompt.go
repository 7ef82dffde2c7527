package sitecode

import (
	"fmt"
	"strings"

	"github.com/sitegenio/sitegen-backend/internal/designs"
)

const codeSystemPrompt = `You are a senior frontend engineer generating a complete website from a design concept.
Produce a standalone HTML document, a full CSS stylesheet, optional vanilla JavaScript,
and Next.js framework files split into pages, components and styles.
Use the design's exact colors and fonts throughout. Components must be valid TypeScript React.`

// buildCodePrompt embeds every design field plus the explicit output
// requirements.
func buildCodePrompt(d designs.Design) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Design name: %s\n", d.DesignName)
	fmt.Fprintf(&b, "Company: %s\n", d.CompanyName)
	fmt.Fprintf(&b, "Description: %s\n", d.Description)
	fmt.Fprintf(&b, "Colors: primary %s, secondary %s, accent %s, background %s, text %s\n",
		d.ColorPalette.Primary, d.ColorPalette.Secondary, d.ColorPalette.Accent,
		d.ColorPalette.Background, d.ColorPalette.Text)
	fmt.Fprintf(&b, "Typography: headings %s, body %s\n", d.Typography.HeadingFont, d.Typography.BodyFont)
	fmt.Fprintf(&b, "Layout: %s with sections %s\n", d.Layout.Type, strings.Join(d.Layout.Sections, ", "))
	if len(d.Features) > 0 {
		fmt.Fprintf(&b, "Features: %s\n", strings.Join(d.Features, ", "))
	}
	if d.ImageStyle != "" {
		fmt.Fprintf(&b, "Image style: %s\n", d.ImageStyle)
	}

	b.WriteString("Output requirements: one complete HTML document, one complete CSS stylesheet, ")
	b.WriteString("optional JavaScript for interactivity, and Next.js files grouped into pages, components and styles. ")
	b.WriteString("Include one component per layout section.")
	return b.String()
}
