package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func rectProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"left":   map[string]interface{}{"type": "number"},
			"top":    map[string]interface{}{"type": "number"},
			"right":  map[string]interface{}{"type": "number"},
			"bottom": map[string]interface{}{"type": "number"},
		},
		"required": []string{"left", "top", "right", "bottom"},
	}
}

func detectionsProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": "Already normalized detections in pixel coordinates, e.g. the output of poster_normalize_detections",
		"items": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"class_id":   map[string]interface{}{"type": "integer"},
				"label":      map[string]interface{}{"type": "string"},
				"confidence": map[string]interface{}{"type": "number"},
				"box":        rectProperty("Bounding box in pixels"),
			},
			"required": []string{"box"},
		},
	}
}

func tensorsProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": "Raw detector outputs. Roles are assigned by shape: [1,N,4] boxes as normalized top,left,bottom,right; the first [1,N] classes and the second scores; [1] count",
		"items": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"index": map[string]interface{}{"type": "integer"},
				"shape": map[string]interface{}{
					"type":  "array",
					"items": map[string]interface{}{"type": "integer"},
				},
				"data": map[string]interface{}{
					"type":  "array",
					"items": map[string]interface{}{"type": "number"},
				},
			},
			"required": []string{"shape", "data"},
		},
	}
}

func labelsProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"description": "Label table indexed by class id. Defaults to COCO",
	}
}

func labelsPathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Path to a label file with one label per line, used instead of labels",
	}
}

func avoidTextProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "boolean",
		"description": "Treat existing lettering in the photo as occupied. Uses OCR when available, otherwise an edge-density heuristic. Default false",
		"default":     false,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded image is cached for subsequent poster tools.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
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
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Detection
		{
			Name:        "poster_normalize_detections",
			Description: "Convert raw object detector output tensors into pixel-space detections with labels. Rows below the confidence threshold or with unusable boxes are skipped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"tensors":     tensorsProperty(),
					"labels":      labelsProperty(),
					"labels_path": labelsPathProperty(),
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Image width in pixels",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Image height in pixels",
					},
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Minimum score (0-1). Defaults to the server setting",
					},
				},
				"required": []string{"tensors", "width", "height"},
			},
		},

		// Placement
		{
			Name:        "poster_find_spaces",
			Description: "Find empty rectangular regions of an image that are free of the given detections, ranked best first by centrality and squareness. Also returns the occupancy grid as text ('#' occupied, '.' empty).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty(),
					"detections":  detectionsProperty(),
					"tensors":     tensorsProperty(),
					"labels":      labelsProperty(),
					"labels_path": labelsPathProperty(),
					"avoid_text":  avoidTextProperty(),
					"min_width": map[string]interface{}{
						"type":        "number",
						"description": "Minimum candidate width in pixels. Defaults to the server setting",
					},
					"min_height": map[string]interface{}{
						"type":        "number",
						"description": "Minimum candidate height in pixels. Defaults to the server setting",
					},
				},
				"required": []string{"path"},
			},
		},

		// Styling
		{
			Name:        "poster_background",
			Description: "Summarize the colors behind a region and pick a legible text style: white on dark backgrounds, black on light ones, with an outline when the background is busy.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty(),
					"rect": rectProperty("Region to analyze, in pixels"),
				},
				"required": []string{"path", "rect"},
			},
		},
		{
			Name:        "poster_fit_text",
			Description: "Find the largest font size at which text (newlines allowed) fits a width x height box, and lay the lines out centered in it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Text to fit. Use \\n for line breaks",
					},
					"width": map[string]interface{}{
						"type":        "number",
						"description": "Box width in pixels",
					},
					"height": map[string]interface{}{
						"type":        "number",
						"description": "Box height in pixels",
					},
				},
				"required": []string{"text", "width", "height"},
			},
		},

		// Composition
		{
			Name:        "poster_compose",
			Description: "Place text on a photo: find the best empty space around the detections, choose a contrasting style, fit the font size and draw it. The poster is returned base64 encoded.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Poster text. Use \\n for line breaks",
					},
					"detections":  detectionsProperty(),
					"tensors":     tensorsProperty(),
					"labels":      labelsProperty(),
					"labels_path": labelsPathProperty(),
					"avoid_text":  avoidTextProperty(),
					"overlay": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw the occupancy grid, detection boxes and numbered candidates for debugging. Default false",
						"default":     false,
					},
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"png", "jpeg", "bmp"},
						"description": "Encoding of the returned image. Default png",
						"default":     "png",
					},
				},
				"required": []string{"path", "text"},
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
