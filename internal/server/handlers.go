package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/palette-extract/internal/imaging"
	"github.com/ironsheep/palette-extract/internal/quant"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_palette").
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
		s.logger.Info("tool failed", "tool", params.Name, "err", err)
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
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_palette":
		return s.handleImagePalette(args)
	case "image_compare_palettes":
		return s.handleImageComparePalettes(args)
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
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (a imageLoadArgs) validate() error {
	if a.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Palette Handlers ===

// imagePaletteArgs uses pointers for optional fields so an explicit zero is
// distinguishable from an omitted value.
type imagePaletteArgs struct {
	Path            string          `json:"path"`
	Count           *int            `json:"count,omitempty"`
	Quality         *int            `json:"quality,omitempty"`
	Region          *imaging.Region `json:"region,omitempty"`
	NamedRegion     string          `json:"named_region,omitempty"`
	IgnoreWhite     bool            `json:"ignore_white,omitempty"`
	WhiteThreshold  *int            `json:"white_threshold,omitempty"`
	AlphaThreshold  *int            `json:"alpha_threshold,omitempty"`
	SignificantBits *int            `json:"significant_bits,omitempty"`
	Priority        string          `json:"priority,omitempty"`
	MaxDimension    int             `json:"max_dimension,omitempty"`
	RenderSwatch    bool            `json:"render_swatch,omitempty"`
}

// imagePaletteResult adds an optional rendered swatch strip to the palette.
type imagePaletteResult struct {
	*imaging.PaletteResult
	Swatch *imaging.SwatchImageResult `json:"swatch,omitempty"`
}

// paletteOptions applies defaults and range checks.
func (a imagePaletteArgs) paletteOptions() (imaging.PaletteOptions, error) {
	opts := imaging.DefaultPaletteOptions()

	if a.Count != nil {
		if *a.Count < 0 || *a.Count > 255 {
			return opts, fmt.Errorf("count must be between 0 and 255, got %d", *a.Count)
		}
		opts.Count = uint8(*a.Count)
	}
	if a.Quality != nil {
		if *a.Quality < 1 {
			return opts, fmt.Errorf("%w: quality must be at least 1, got %d", quant.ErrInvalidQuality, *a.Quality)
		}
		opts.Quality = *a.Quality
	}
	if a.MaxDimension < 0 {
		return opts, fmt.Errorf("max_dimension must not be negative, got %d", a.MaxDimension)
	}
	opts.MaxDimension = a.MaxDimension

	opts.Quant.IgnoreNearWhite = a.IgnoreWhite
	if a.WhiteThreshold != nil {
		v, err := byteArg("white_threshold", *a.WhiteThreshold)
		if err != nil {
			return opts, err
		}
		opts.Quant.WhiteThreshold = v
	}
	if a.AlphaThreshold != nil {
		v, err := byteArg("alpha_threshold", *a.AlphaThreshold)
		if err != nil {
			return opts, err
		}
		opts.Quant.AlphaThreshold = v
	}
	if a.SignificantBits != nil {
		if *a.SignificantBits < 1 || *a.SignificantBits > 8 {
			return opts, fmt.Errorf("significant_bits must be between 1 and 8, got %d", *a.SignificantBits)
		}
		opts.Quant.SignificantBits = *a.SignificantBits
	}
	priority, err := quant.ParsePriority(a.Priority)
	if err != nil {
		return opts, err
	}
	opts.Quant.Priority = priority

	return opts, nil
}

func byteArg(name string, v int) (uint8, error) {
	if v < 0 || v > 255 {
		return 0, fmt.Errorf("%s must be between 0 and 255, got %d", name, v)
	}
	return uint8(v), nil
}

func (s *Server) handleImagePalette(args json.RawMessage) (interface{}, error) {
	var a imagePaletteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	opts, err := a.paletteOptions()
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	switch {
	case a.Region != nil:
		opts.Region = a.Region
	case a.NamedRegion != "":
		r, err := imaging.NamedRegion(img, a.NamedRegion)
		if err != nil {
			return nil, err
		}
		opts.Region = &r
	}

	s.logger.Debug("extracting palette",
		"path", a.Path, "count", opts.Count, "quality", opts.Quality,
		"priority", opts.Quant.Priority, "bits", opts.Quant.SignificantBits)

	result, err := imaging.ExtractPalette(img, opts)
	if err != nil {
		return nil, err
	}
	if !a.RenderSwatch || len(result.Colors) == 0 {
		return result, nil
	}

	swatch, err := imaging.EncodeSwatches(result.Colors, imaging.SwatchOptions{
		Proportional: true,
		Labels:       true,
	})
	if err != nil {
		return nil, err
	}
	return imagePaletteResult{PaletteResult: result, Swatch: swatch}, nil
}

type imageComparePalettesArgs struct {
	Path    string          `json:"path"`
	Path2   string          `json:"path2,omitempty"`
	Region1 *imaging.Region `json:"region1,omitempty"`
	Region2 *imaging.Region `json:"region2,omitempty"`
	Count   *int            `json:"count,omitempty"`
	Quality *int            `json:"quality,omitempty"`
}

// imageComparePalettesResult carries both palettes next to the comparison.
type imageComparePalettesResult struct {
	*imaging.PaletteComparison
	Palette1 []imaging.PaletteColor `json:"palette1"`
	Palette2 []imaging.PaletteColor `json:"palette2"`
}

func (s *Server) handleImageComparePalettes(args json.RawMessage) (interface{}, error) {
	var a imageComparePalettesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if a.Path2 == "" {
		a.Path2 = a.Path
	}

	opts, err := imagePaletteArgs{Count: a.Count, Quality: a.Quality}.paletteOptions()
	if err != nil {
		return nil, err
	}
	if opts.Count == 0 {
		return nil, fmt.Errorf("count must be at least 1 to compare palettes")
	}

	extract := func(path string, region *imaging.Region) ([]imaging.PaletteColor, error) {
		img, err := s.cache.Load(path)
		if err != nil {
			return nil, err
		}
		o := opts
		o.Region = region
		result, err := imaging.ExtractPalette(img, o)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return result.Colors, nil
	}

	p1, err := extract(a.Path, a.Region1)
	if err != nil {
		return nil, err
	}
	p2, err := extract(a.Path2, a.Region2)
	if err != nil {
		return nil, err
	}

	cmp, err := imaging.ComparePalettes(p1, p2)
	if err != nil {
		return nil, err
	}
	return imageComparePalettesResult{PaletteComparison: cmp, Palette1: p1, Palette2: p2}, nil
}
