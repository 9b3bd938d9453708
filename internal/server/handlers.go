package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/pixcodec/internal/codec"
	"github.com/ironsheep/pixcodec/internal/transcode"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "pixel_encode", "pixel_decode").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler unmarshals its arguments, fills omitted options from the
// server configuration and delegates to the transcoder.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "pixel_encode":
		return s.handlePixelEncode(args)
	case "pixel_decode":
		return s.handlePixelDecode(args)
	case "pixel_inspect":
		return s.handlePixelInspect(args)
	case "pixel_capacity":
		return s.handlePixelCapacity(args)
	case "pixel_generate_carrier":
		return s.handlePixelGenerateCarrier(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// encodeOptions resolves mode and depth arguments against the configured
// defaults.
func (s *Server) encodeOptions(mode string, depth int, carrier string) (transcode.Options, error) {
	m, d, err := s.cfg.Encode.Apply(mode, depth)
	if err != nil {
		return transcode.Options{}, err
	}
	return transcode.Options{Mode: m, Depth: d, CarrierPath: carrier}, nil
}

// === Encode ===

type pixelEncodeArgs struct {
	Output    string  `json:"output"`
	Text      *string `json:"text"`
	InputPath string  `json:"input_path"`
	Mode      string  `json:"mode"`
	Depth     int     `json:"depth"`
	Carrier   string  `json:"carrier"`
}

func (s *Server) handlePixelEncode(args json.RawMessage) (interface{}, error) {
	var a pixelEncodeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, errors.New("output is required")
	}
	// text may be empty, so presence is what counts.
	if (a.Text == nil) == (a.InputPath == "") {
		return nil, errors.New("exactly one of text or input_path is required")
	}

	opts, err := s.encodeOptions(a.Mode, a.Depth, a.Carrier)
	if err != nil {
		return nil, err
	}
	if a.InputPath != "" {
		return s.transcoder.EncodeFile(a.InputPath, a.Output, opts)
	}
	return s.transcoder.EncodeText(*a.Text, a.Output, opts)
}

// === Decode ===

type pixelDecodeArgs struct {
	Path       string `json:"path"`
	Data       string `json:"data"`
	OutputPath string `json:"output_path"`
}

// DecodeResult is the pixel_decode tool result.
type DecodeResult struct {
	Header       codec.Header `json:"header"`
	Payload      string       `json:"payload"`
	Encoding     string       `json:"encoding"` // "utf-8" or "base64"
	PayloadBytes int          `json:"payload_bytes"`
	Digest       string       `json:"blake3"`
	OutputPath   string       `json:"output_path,omitempty"`
}

func (s *Server) handlePixelDecode(args json.RawMessage) (interface{}, error) {
	var a pixelDecodeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if (a.Path == "") == (a.Data == "") {
		return nil, errors.New("exactly one of path or data is required")
	}

	var (
		d   *transcode.Decoded
		err error
	)
	switch {
	case a.Data != "":
		raw, decErr := base64.StdEncoding.DecodeString(a.Data)
		if decErr != nil {
			return nil, fmt.Errorf("data is not valid base64: %w", decErr)
		}
		d, err = s.transcoder.DecodeData(raw)
	case a.OutputPath != "":
		d, err = s.transcoder.DecodeToFile(a.Path, a.OutputPath)
	default:
		d, err = s.transcoder.DecodeFile(a.Path)
	}
	if err != nil {
		return nil, err
	}

	payload, encoding := transcode.PayloadView(d.Payload)
	return &DecodeResult{
		Header:       d.Header,
		Payload:      payload,
		Encoding:     encoding,
		PayloadBytes: len(d.Payload),
		Digest:       d.Digest,
		OutputPath:   a.OutputPath,
	}, nil
}

// === Inspect ===

type pixelInspectArgs struct {
	Path string `json:"path"`
}

func (s *Server) handlePixelInspect(args json.RawMessage) (interface{}, error) {
	var a pixelInspectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.transcoder.Inspect(a.Path)
}

// === Capacity ===

type pixelCapacityArgs struct {
	PayloadBytes int    `json:"payload_bytes"`
	Mode         string `json:"mode"`
	Depth        int    `json:"depth"`
	Carrier      string `json:"carrier"`
}

// CapacityResult is the pixel_capacity tool result.
type CapacityResult struct {
	*codec.Plan

	// MaxPayloadBytes is the largest payload the carrier holds at this
	// depth. Present only for hidden mode with a carrier.
	MaxPayloadBytes *int `json:"max_payload_bytes,omitempty"`
}

func (s *Server) handlePixelCapacity(args json.RawMessage) (interface{}, error) {
	var a pixelCapacityArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	opts, err := s.encodeOptions(a.Mode, a.Depth, a.Carrier)
	if err != nil {
		return nil, err
	}

	plan, err := s.transcoder.Plan(a.PayloadBytes, opts)
	if err != nil {
		return nil, err
	}
	result := &CapacityResult{Plan: plan}
	if plan.Mode == codec.ModeHidden && a.Carrier != "" {
		limit, err := codec.MaxPayload(plan.AvailableBytes, plan.Depth)
		if err != nil {
			return nil, err
		}
		result.MaxPayloadBytes = &limit
	}
	return result, nil
}

// === Carrier generation ===

type pixelGenerateCarrierArgs struct {
	Output string   `json:"output"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Blur   *float64 `json:"blur"`
}

func (s *Server) handlePixelGenerateCarrier(args json.RawMessage) (interface{}, error) {
	var a pixelGenerateCarrierArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, errors.New("output is required")
	}
	if a.Width == 0 {
		a.Width = s.cfg.Carrier.Width
	}
	if a.Height == 0 {
		a.Height = s.cfg.Carrier.Height
	}
	blur := s.cfg.Carrier.Blur
	if a.Blur != nil {
		blur = *a.Blur
	}
	return s.transcoder.GenerateCarrier(a.Output, a.Width, a.Height, blur)
}
