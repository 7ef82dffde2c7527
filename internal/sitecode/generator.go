package sitecode

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sitegenio/sitegen-backend/internal/designs"
	"github.com/sitegenio/sitegen-backend/internal/llm"
	"github.com/sitegenio/sitegen-backend/internal/logging"
)

// Generator produces a code artifact from a saved design. A nil AI client
// means no credential is configured and the template fallback runs silently.
type Generator struct {
	ai llm.Client
}

func NewGenerator(ai llm.Client) *Generator {
	return &Generator{ai: ai}
}

// Generate returns an artifact with non-empty html and css. Provider failures
// are absorbed by the fallback and never reach the caller. The artifact is
// not persisted; that is a separate explicit step.
func (g *Generator) Generate(ctx context.Context, d designs.Design) Artifact {
	logger := logging.NewLogger(ctx)

	if g.ai == nil {
		logger.LogInfo("generate_code", "no ai credential configured, using template code")
		return fallbackArtifact(d)
	}

	prompt := buildCodePrompt(d)
	raw, err := g.ai.GenerateJSON(ctx, codeSystemPrompt, prompt, "website_code", codeSchema())
	if err != nil {
		logger.LogError("generate_code", fmt.Errorf("ai generation failed, using template code: %w", err))
		return fallbackArtifact(d)
	}

	artifact, err := decodeArtifact(raw, d.ID)
	if err != nil {
		logger.LogError("generate_code", fmt.Errorf("ai response rejected, using template code: %w", err))
		return fallbackArtifact(d)
	}
	return artifact
}

func decodeArtifact(raw map[string]any, designID string) (Artifact, error) {
	b, err := json.Marshal(raw)
	if err != nil {
		return Artifact{}, err
	}

	var wire struct {
		HTML       string         `json:"html"`
		CSS        string         `json:"css"`
		JavaScript string         `json:"javascript"`
		Framework  FrameworkFiles `json:"framework"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return Artifact{}, fmt.Errorf("decode code artifact: %w", err)
	}
	if wire.HTML == "" || wire.CSS == "" {
		return Artifact{}, fmt.Errorf("response missing html or css")
	}

	artifact := Artifact{
		DesignID:   designID,
		HTML:       wire.HTML,
		CSS:        wire.CSS,
		JavaScript: wire.JavaScript,
		Framework:  wire.Framework,
	}
	artifact.Normalize()
	return artifact, nil
}
