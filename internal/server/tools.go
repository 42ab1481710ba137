package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
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
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Patch Operations
		{
			Name:        "patch_grid",
			Description: "Partition an image into its attribution patch grid and return the patch rectangles in row-major index order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"patch_size": map[string]interface{}{
						"type":        "integer",
						"description": "Grid cell edge length in pixels (default 32)",
						"default":     32,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "patch_crop",
			Description: "Extract one patch of the grid as a base64-encoded PNG. Use this to see what lies behind a particular attribution value.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"patch_size": map[string]interface{}{
						"type":        "integer",
						"description": "Grid cell edge length in pixels (default 32)",
						"default":     32,
					},
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Patch index in row-major grid order",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 4.0 to enlarge small patches). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "index"},
			},
		},

		// Classification
		{
			Name:        "classify",
			Description: "Run the classifier on an image and return class probabilities sorted by confidence.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"top_k": map[string]interface{}{
						"type":        "integer",
						"description": "Number of predictions to return (default 5, 0 for all)",
						"default":     5,
					},
				},
				"required": []string{"path"},
			},
		},

		// Attribution
		{
			Name:        "attribute",
			Description: "Estimate per-patch attributions for the classifier's prediction via perturbation sampling (simplified KernelSHAP). Returns the patch grid, one attribution value per patch, and summary statistics.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"patch_size": map[string]interface{}{
						"type":        "integer",
						"description": "Grid cell edge length in pixels (default 32)",
						"default":     32,
					},
					"samples": map[string]interface{}{
						"type":        "integer",
						"description": "Number of Monte-Carlo trials; more samples, less variance (default 200)",
						"default":     200,
					},
					"seed": map[string]interface{}{
						"type":        "integer",
						"description": "Random seed for the mask sampler (default 0)",
						"default":     0,
					},
					"workers": map[string]interface{}{
						"type":        "integer",
						"description": "Concurrent trial workers (default 1)",
						"default":     1,
					},
					"fill_color": map[string]interface{}{
						"type":        "string",
						"description": "Hex fill for excluded patches, or \"mean\" for the image's average color (default #000000)",
						"default":     "#000000",
					},
					"target_class": map[string]interface{}{
						"type":        "string",
						"description": "Class label to track. Defaults to the baseline prediction's top class.",
					},
				},
				"required": []string{"path"},
			},
		},
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
