// Package server implements the MCP (Model Context Protocol) server for the
// attribution tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the attribution
// pipeline through the MCP protocol, so Claude and other MCP-compatible
// clients can ask "which parts of this image drove the prediction?" and
// then drill into the answer.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Patch Operations:
//   - patch_grid: Compute the patch grid for an image and patch size
//   - patch_crop: Extract one patch as a PNG for inspection
//
// Classification:
//   - classify: Run the classifier, return class probabilities
//
// Attribution:
//   - attribute: Full perturbation-sampling attribution run; returns the
//     patch grid, one value per patch, and summary statistics
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images keyed by path,
// so the repeated reads an attribution session causes (grid, crops,
// classify, attribute against the same file) decode the image once.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// A failed attribution run returns an error with no partial vector; see the
// attribution package for why.
package server
