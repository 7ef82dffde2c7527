package sitecode

// codeSchema is the declared output shape for code generation: a full HTML
// document, a stylesheet, optional script, and the three framework file
// groups.
func codeSchema() map[string]any {
	stringProp := map[string]any{"type": "string"}

	namedFile := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": stringProp,
			"code": stringProp,
		},
		"required":             []string{"name", "code"},
		"additionalProperties": false,
	}
	fileArray := map[string]any{"type": "array", "items": namedFile}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"html":       stringProp,
			"css":        stringProp,
			"javascript": stringProp,
			"framework": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"pages":      fileArray,
					"components": fileArray,
					"styles":     fileArray,
				},
				"required":             []string{"pages", "components", "styles"},
				"additionalProperties": false,
			},
		},
		"required":             []string{"html", "css", "javascript", "framework"},
		"additionalProperties": false,
	}
}
