package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func modeProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{"static", "hidden"},
		"description": "static writes a new image made only of payload bytes; hidden blends the payload into the low bits of a carrier image. Defaults to the configured mode.",
	}
}

func depthProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"enum":        []int{2, 4, 6},
		"description": "Hidden mode: low bits per channel byte used for payload. Higher depth holds more but is more visible. Ignored for static mode. Defaults to the configured depth.",
	}
}

func carrierProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the carrier image (required for hidden mode). Must be fully opaque.",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "pixel_encode",
			Description: "Encode text or a file's bytes into a lossless PNG image. Returns the output path, geometry and a BLAKE3 digest of the payload; hidden mode also reports carrier distortion.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the PNG to write",
					},
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Text payload. Exactly one of text or input_path is required.",
					},
					"input_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of a file whose bytes are the payload",
					},
					"mode":    modeProperty(),
					"depth":   depthProperty(),
					"carrier": carrierProperty(),
				},
				"required": []string{"output"},
			},
		},
		{
			Name:        "pixel_decode",
			Description: "Decode the payload carried by an encoded image. Mode and depth are read from the image itself. Text payloads are returned as UTF-8, binary payloads as base64.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the encoded image. Exactly one of path or data is required.",
					},
					"data": map[string]interface{}{
						"type":        "string",
						"description": "Base64-encoded PNG image bytes",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional: also write the raw payload to this file",
					},
				},
			},
		},
		{
			Name:        "pixel_inspect",
			Description: "Report an image's dimensions, format and carrier capacity, and the meta header (mode, depth, format version) if it holds an encoded payload.",
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
			Name:        "pixel_capacity",
			Description: "Plan an encode without writing anything: how many bytes a payload needs, how many the carrier offers, and whether it fits. Also reports the largest payload the carrier can hold.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"payload_bytes": map[string]interface{}{
						"type":        "integer",
						"description": "Payload length in bytes",
						"minimum":     0,
					},
					"mode":    modeProperty(),
					"depth":   depthProperty(),
					"carrier": carrierProperty(),
				},
				"required": []string{"payload_bytes"},
			},
		},
		{
			Name:        "pixel_generate_carrier",
			Description: "Generate a random color noise PNG to use as a hidden-mode carrier.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the PNG to write",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Width in pixels. Defaults to the configured carrier width.",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Height in pixels. Defaults to the configured carrier height.",
					},
					"blur": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian blur radius; 0 keeps raw noise. Defaults to the configured blur.",
					},
				},
				"required": []string{"output"},
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
