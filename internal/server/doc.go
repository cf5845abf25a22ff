// Package server implements the MCP (Model Context Protocol) server for the
// poster composition tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Logs go to stderr so they never interleave with responses.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Poster pipeline:
//   - poster_normalize_detections: Detector output tensors to labelled boxes
//   - poster_find_spaces: Ranked empty regions around the given obstacles
//   - poster_background: Palette summary and text style for a region
//   - poster_fit_text: Largest font size for a box, with line layout
//   - poster_compose: The whole pipeline, returning or writing the poster
//
// Obstacles for poster_find_spaces and poster_compose can be given as
// ready-made detections, as raw tensors plus a label table, or both.
// With avoid_text set, lettering already in the photo is found with
// Tesseract, or with an edge-density heuristic when OCR is unavailable.
//
// # Error Handling
//
// Tool errors are returned as JSON-RPC error responses:
//   - -32602: malformed or invalid arguments, or an unknown tool
//   - -32000: the tool ran and failed (unreadable image, no placement found)
//   - -32601: unknown method
//
// # Usage
//
//	srv, err := server.New(config.Defaults(), logger.Get())
//	if err != nil {
//	    return err
//	}
//	defer srv.Close()
//	return srv.Run(ctx)
package server
