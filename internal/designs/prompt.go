package designs

import (
	"fmt"
	"strings"
)

const designSystemPrompt = `You are a senior web designer producing website design concepts.
Return three distinct design candidates for the business described by the user.
Every candidate must be complete: palette, typography, layout sections, features and image style.
Stay close to the requested color scheme and complexity level.`

// buildDesignPrompt renders the submission into a deterministic natural
// language prompt. Field order is fixed so identical submissions produce
// identical prompts.
func buildDesignPrompt(sub OnboardingSubmission) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Company: %s\n", sub.CompanyInfo.CompanyName)
	fmt.Fprintf(&b, "Industry: %s\n", sub.CompanyInfo.Industry)
	fmt.Fprintf(&b, "Description: %s\n", sub.CompanyInfo.Description)
	fmt.Fprintf(&b, "Target audience: %s\n", sub.ServiceInfo.TargetAudience)
	fmt.Fprintf(&b, "Main services: %s\n", strings.Join(sub.ServiceInfo.MainServices, ", "))
	fmt.Fprintf(&b, "Unique selling points: %s\n", sub.ServiceInfo.UniqueSellingPoints)
	fmt.Fprintf(&b, "Preferred color scheme: %s", sub.DesignPreferences.ColorScheme)

	if p, ok := paletteTable[sub.DesignPreferences.ColorScheme]; ok {
		fmt.Fprintf(&b, " (primary %s, secondary %s)", p.Primary, p.Secondary)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Complexity (1-5): %d\n", sub.DesignPreferences.Complexity)
	if len(sub.DesignPreferences.MustHaveFeatures) > 0 {
		fmt.Fprintf(&b, "Must-have features: %s\n", strings.Join(sub.DesignPreferences.MustHaveFeatures, ", "))
	}
	if sub.DesignPreferences.ImageStyle != "" {
		fmt.Fprintf(&b, "Image style: %s\n", sub.DesignPreferences.ImageStyle)
	}

	b.WriteString("Produce exactly three design candidates.")
	return b.String()
}
