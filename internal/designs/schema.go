package designs

// designBatchSchema is the declared output shape for design generation: an
// object holding exactly three design candidates. Ids and timestamps are
// assigned after the fact, so they are not part of the schema.
func designBatchSchema() map[string]any {
	stringProp := map[string]any{"type": "string"}
	stringArray := map[string]any{"type": "array", "items": stringProp}

	design := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"design_name": stringProp,
			"description": stringProp,
			"color_palette": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"primary":    stringProp,
					"secondary":  stringProp,
					"accent":     stringProp,
					"background": stringProp,
					"text":       stringProp,
				},
				"required":             []string{"primary", "secondary", "accent", "background", "text"},
				"additionalProperties": false,
			},
			"typography": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"heading_font": stringProp,
					"body_font":    stringProp,
				},
				"required":             []string{"heading_font", "body_font"},
				"additionalProperties": false,
			},
			"layout": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"type":     stringProp,
					"sections": stringArray,
				},
				"required":             []string{"type", "sections"},
				"additionalProperties": false,
			},
			"features":    stringArray,
			"image_style": stringProp,
		},
		"required": []string{
			"design_name", "description", "color_palette",
			"typography", "layout", "features", "image_style",
		},
		"additionalProperties": false,
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"designs": map[string]any{
				"type":     "array",
				"items":    design,
				"minItems": 3,
				"maxItems": 3,
			},
		},
		"required":             []string{"designs"},
		"additionalProperties": false,
	}
}
