package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/trinity/shap-mcp/internal/attribution"
	"github.com/trinity/shap-mcp/internal/classifier"
	"github.com/trinity/shap-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "patch_grid", "attribute").
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Patch Operations
	case "patch_grid":
		return s.handlePatchGrid(args)
	case "patch_crop":
		return s.handlePatchCrop(args)

	// Classification
	case "classify":
		return s.handleClassify(args)

	// Attribution
	case "attribute":
		return s.handleAttribute(args)

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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// errNoClassifier is returned by the model-backed tools when the server was
// started without a classifier.
var errNoClassifier = errors.New("no classifier configured; start the server with a model")

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Patch Operation Handlers ===

type patchGridArgs struct {
	Path      string `json:"path"`
	PatchSize int    `json:"patch_size"`
}

// PatchGridResult lists the patch grid for an image.
type PatchGridResult struct {
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	PatchSize int             `json:"patch_size"`
	Count     int             `json:"count"`
	Patches   []imaging.Patch `json:"patches"`
}

func (s *Server) handlePatchGrid(args json.RawMessage) (interface{}, error) {
	var a patchGridArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.PatchSize == 0 {
		a.PatchSize = 32
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	patches, err := imaging.BuildPatchGrid(bounds.Dx(), bounds.Dy(), a.PatchSize)
	if err != nil {
		return nil, err
	}

	return &PatchGridResult{
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		PatchSize: a.PatchSize,
		Count:     len(patches),
		Patches:   patches,
	}, nil
}

type patchCropArgs struct {
	Path      string  `json:"path"`
	PatchSize int     `json:"patch_size"`
	Index     int     `json:"index"`
	Scale     float64 `json:"scale"`
}

func (s *Server) handlePatchCrop(args json.RawMessage) (interface{}, error) {
	var a patchCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.PatchSize == 0 {
		a.PatchSize = 32
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	patches, err := imaging.BuildPatchGrid(bounds.Dx(), bounds.Dy(), a.PatchSize)
	if err != nil {
		return nil, err
	}

	return imaging.ExtractPatch(img, patches, a.Index, a.Scale)
}

// === Classification Handlers ===

type classifyArgs struct {
	Path string `json:"path"`
	TopK int    `json:"top_k"`
}

// ClassifyResult holds a truncated prediction list for an image.
type ClassifyResult struct {
	Predictions []classifier.Prediction `json:"predictions"`
}

func (s *Server) handleClassify(args json.RawMessage) (interface{}, error) {
	if s.classifier == nil {
		return nil, errNoClassifier
	}

	var a classifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.TopK == 0 {
		a.TopK = 5
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	preds, err := s.classifier.Predict(img)
	if err != nil {
		return nil, err
	}
	if a.TopK > 0 && len(preds) > a.TopK {
		preds = preds[:a.TopK]
	}

	return &ClassifyResult{Predictions: preds}, nil
}

// === Attribution Handlers ===

type attributeArgs struct {
	Path        string `json:"path"`
	PatchSize   int    `json:"patch_size"`
	Samples     int    `json:"samples"`
	Seed        int64  `json:"seed"`
	Workers     int    `json:"workers"`
	FillColor   string `json:"fill_color"`
	TargetClass string `json:"target_class"`
}

// AttributeResult pairs the attribution vector with its summary statistics.
type AttributeResult struct {
	*attribution.Attribution
	Summary attribution.Summary `json:"summary"`
}

func (s *Server) handleAttribute(args json.RawMessage) (interface{}, error) {
	if s.classifier == nil {
		return nil, errNoClassifier
	}

	var a attributeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.PatchSize == 0 {
		a.PatchSize = 32
	}
	if a.Samples == 0 {
		a.Samples = 200
	}
	if a.Workers == 0 {
		a.Workers = 1
	}
	if a.FillColor == "" {
		a.FillColor = "#000000"
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	fill, err := resolveFill(a.FillColor, img)
	if err != nil {
		return nil, err
	}

	estimator := &attribution.Estimator{
		Classifier:  s.classifier,
		PatchSize:   a.PatchSize,
		Samples:     a.Samples,
		Seed:        a.Seed,
		Workers:     a.Workers,
		Fill:        fill,
		TargetClass: a.TargetClass,
	}

	result, err := estimator.Estimate(context.Background(), img)
	if err != nil {
		return nil, err
	}

	return &AttributeResult{
		Attribution: result,
		Summary:     result.Summarize(),
	}, nil
}

// resolveFill maps the fill_color argument to a concrete color: a hex
// string, or "mean" for the image's average color.
func resolveFill(spec string, img image.Image) (color.Color, error) {
	if spec == "mean" {
		return imaging.MeanColor(img), nil
	}
	return imaging.ParseFillColor(spec)
}
