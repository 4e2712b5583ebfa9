// Package server implements the MCP (Model Context Protocol) server for
// palette extraction.
//
// This package provides a JSON-RPC 2.0 server that exposes the median-cut
// quantizer through the MCP protocol, so MCP-compatible clients can ask for
// the dominant colors of an image file.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_palette: Extract a palette, optionally from a region
//   - image_compare_palettes: Compare the palettes of two images or regions
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the server, so
// repeated palette calls with different options decode the file once.
//
// # Error Handling
//
// Errors are returned as JSON-RPC error responses:
//   - -32700: the request line was not valid JSON
//   - -32601: unknown method
//   - -32602: malformed tools/call params
//   - -32000: the tool ran and failed; data carries the Go error string
//
// # Usage
//
//	srv := server.New(server.WithLogger(logger))
//	if err := srv.Run(); err != nil {
//	    logger.Error("server error", "err", err)
//	}
package server
