package designs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sitegenio/sitegen-backend/internal/llm"
	"github.com/sitegenio/sitegen-backend/internal/logging"
)

// Generator produces design candidates for an onboarding submission.
// A nil AI client means no credential is configured; the deterministic
// fallback runs silently in that case.
type Generator struct {
	ai llm.Client
}

func NewGenerator(ai llm.Client) *Generator {
	return &Generator{ai: ai}
}

// Generate returns exactly three design candidates. Provider failures are
// absorbed by the fallback and never reach the caller; the submission must be
// validated before this is called.
func (g *Generator) Generate(ctx context.Context, sub OnboardingSubmission) []Design {
	logger := logging.NewLogger(ctx)

	if g.ai == nil {
		logger.LogInfo("generate_designs", "no ai credential configured, using fallback designs")
		return fallbackDesigns(sub)
	}

	prompt := buildDesignPrompt(sub)
	raw, err := g.ai.GenerateJSON(ctx, designSystemPrompt, prompt, "website_designs", designBatchSchema())
	if err != nil {
		// Credentialed call failed: worth an operator's attention even though
		// the user still gets designs.
		logger.LogError("generate_designs", fmt.Errorf("ai generation failed, using fallback: %w", err))
		return fallbackDesigns(sub)
	}

	batch, err := decodeDesignBatch(raw, sub)
	if err != nil {
		logger.LogError("generate_designs", fmt.Errorf("ai response rejected, using fallback: %w", err))
		return fallbackDesigns(sub)
	}
	return batch
}

// designWire mirrors the declared schema for decoding.
type designWire struct {
	DesignName   string       `json:"design_name"`
	Description  string       `json:"description"`
	ColorPalette ColorPalette `json:"color_palette"`
	Typography   Typography   `json:"typography"`
	Layout       Layout       `json:"layout"`
	Features     []string     `json:"features"`
	ImageStyle   string       `json:"image_style"`
}

func decodeDesignBatch(raw map[string]any, sub OnboardingSubmission) ([]Design, error) {
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}

	var wire struct {
		Designs []designWire `json:"designs"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return nil, fmt.Errorf("decode designs: %w", err)
	}

	fallback := fallbackDesigns(sub)

	out := make([]Design, 0, 3)
	for _, w := range wire.Designs {
		if len(out) == 3 {
			break
		}
		d := Design{
			CompanyName:  sub.CompanyInfo.CompanyName,
			DesignName:   w.DesignName,
			Description:  w.Description,
			ColorPalette: w.ColorPalette,
			Typography:   w.Typography,
			Layout:       w.Layout,
			Features:     mergeFeatures(w.Features, sub.DesignPreferences.MustHaveFeatures),
			ImageStyle:   w.ImageStyle,
		}
		if !populated(&d) {
			continue
		}
		d.Normalize()
		out = append(out, d)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no usable designs in response")
	}

	// Pad short batches from the fallback so the contract of exactly three
	// candidates holds.
	for i := len(out); i < 3; i++ {
		out = append(out, fallback[i])
	}
	return out, nil
}

// populated reports whether every palette, typography, and layout field
// carries a value. Schema-conformant output can still hold empty strings.
func populated(d *Design) bool {
	if d.DesignName == "" || d.Description == "" {
		return false
	}
	p := d.ColorPalette
	if p.Primary == "" || p.Secondary == "" || p.Accent == "" || p.Background == "" || p.Text == "" {
		return false
	}
	if d.Typography.HeadingFont == "" || d.Typography.BodyFont == "" {
		return false
	}
	return d.Layout.Type != "" && len(d.Layout.Sections) > 0
}
