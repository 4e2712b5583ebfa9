package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and whether it carries transparency. The decoded image is cached for later palette calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},

		// Palette Extraction
		{
			Name:        "image_palette",
			Description: "Extract a color palette from an image using median-cut quantization. Returns up to 'count' colors with hex, RGB, HSL and the share of sampled pixels each color represents. Colors are listed in the order the quantizer produced them.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of colors to return (0-255)",
						"default":     5,
						"minimum":     0,
						"maximum":     255,
					},
					"quality": map[string]interface{}{
						"type":        "integer",
						"description": "Sampling stride: every Nth pixel is considered. 1 samples every pixel",
						"default":     10,
						"minimum":     1,
					},
					"region": regionProperty("Optional rectangle to restrict extraction to"),
					"named_region": map[string]interface{}{
						"type":        "string",
						"description": "Optional named area, used when 'region' is absent",
						"enum": []string{
							"top-left", "top-right", "bottom-left", "bottom-right",
							"top-half", "bottom-half", "left-half", "right-half", "center",
						},
					},
					"ignore_white": map[string]interface{}{
						"type":        "boolean",
						"description": "Skip near-white pixels",
						"default":     false,
					},
					"white_threshold": map[string]interface{}{
						"type":        "integer",
						"description": "A pixel is near-white when all channels exceed this value",
						"default":     250,
					},
					"alpha_threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels with alpha below this value are skipped",
						"default":     125,
					},
					"significant_bits": map[string]interface{}{
						"type":        "integer",
						"description": "Bits kept per channel when bucketing colors (1-8)",
						"default":     5,
					},
					"priority": map[string]interface{}{
						"type":        "string",
						"description": "Which box to split next",
						"enum":        []string{"population", "volume"},
						"default":     "population",
					},
					"max_dimension": map[string]interface{}{
						"type":        "integer",
						"description": "Downscale so neither side exceeds this many pixels before sampling. 0 disables",
						"default":     0,
					},
					"render_swatch": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return the palette as a base64 PNG swatch strip",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_compare_palettes",
			Description: "Extract palettes from two images (or two regions of one image) and match each color of the first to its perceptually nearest color in the second using CIEDE2000. Reports per-color delta E, the population-weighted average and whether the palettes are similar.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"path2": map[string]interface{}{
						"type":        "string",
						"description": "Second image. Defaults to 'path' so two regions of one image can be compared",
					},
					"region1": regionProperty("Optional rectangle of the first image"),
					"region2": regionProperty("Optional rectangle of the second image"),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Palette size extracted from each side (1-255)",
						"default":     5,
					},
					"quality": map[string]interface{}{
						"type":        "integer",
						"description": "Sampling stride for both extractions",
						"default":     10,
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

func regionProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
			"x2": map[string]interface{}{"type": "integer"},
			"y2": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
