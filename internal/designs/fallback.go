package designs

import "fmt"

// fallbackDesigns builds three deterministic design candidates from the
// submission alone. It cannot fail: every field comes from lookup tables or
// the submission itself.
func fallbackDesigns(sub OnboardingSubmission) []Design {
	company := sub.CompanyInfo.CompanyName
	palette := PaletteFor(sub.DesignPreferences.ColorScheme)
	features := baseFeatures(sub.DesignPreferences.Complexity)
	features = mergeFeatures(features, sub.DesignPreferences.MustHaveFeatures)

	imageStyle := sub.DesignPreferences.ImageStyle
	if imageStyle == "" {
		imageStyle = "photographic"
	}

	variants := []Design{
		{
			CompanyName:  company,
			DesignName:   fmt.Sprintf("Modern %s", company),
			Description:  fmt.Sprintf("A clean, modern single-page concept for %s focused on %s.", company, sub.ServiceInfo.TargetAudience),
			ColorPalette: palette,
			Typography:   Typography{HeadingFont: "Inter", BodyFont: "Inter"},
			Layout: Layout{
				Type:     "single-page",
				Sections: []string{"hero", "about", "services", "testimonials", "contact"},
			},
			Features:   features,
			ImageStyle: imageStyle,
		},
		{
			CompanyName:  company,
			DesignName:   fmt.Sprintf("Bold %s", company),
			Description:  fmt.Sprintf("A high-contrast concept that leads with %s's strongest services.", company),
			ColorPalette: rotatePalette(palette),
			Typography:   Typography{HeadingFont: "Montserrat", BodyFont: "Open Sans"},
			Layout: Layout{
				Type:     "multi-section",
				Sections: []string{"hero", "services", "gallery", "team", "contact"},
			},
			Features:   mergeFeatures(features, []string{"animations"}),
			ImageStyle: imageStyle,
		},
		{
			CompanyName: company,
			DesignName:  fmt.Sprintf("%s Professional", company),
			Description: fmt.Sprintf("A structured corporate concept presenting %s with established credibility.", company),
			ColorPalette: ColorPalette{
				Primary:    palette.Secondary,
				Secondary:  palette.Primary,
				Accent:     palette.Accent,
				Background: palette.Background,
				Text:       palette.Text,
			},
			Typography: Typography{HeadingFont: "Playfair Display", BodyFont: "Source Sans Pro"},
			Layout: Layout{
				Type:     "corporate",
				Sections: []string{"hero", "about", "services", "pricing", "faq", "contact"},
			},
			Features:   mergeFeatures(features, []string{"newsletter"}),
			ImageStyle: imageStyle,
		},
	}

	for i := range variants {
		variants[i].Normalize()
	}
	return variants
}

// rotatePalette shifts the color channels so sibling variants differ without
// leaving the chosen scheme.
func rotatePalette(p ColorPalette) ColorPalette {
	return ColorPalette{
		Primary:    p.Accent,
		Secondary:  p.Primary,
		Accent:     p.Secondary,
		Background: p.Background,
		Text:       p.Text,
	}
}

func baseFeatures(complexity int) []string {
	features := []string{"responsive", "seo-basics"}
	if complexity >= 3 {
		features = append(features, "contact-form", "social-links")
	}
	if complexity >= 4 {
		features = append(features, "blog", "analytics")
	}
	if complexity >= 5 {
		features = append(features, "multilingual")
	}
	return features
}

func mergeFeatures(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, f := range base {
		if f != "" && !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	for _, f := range extra {
		if f != "" && !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
