// Package server implements the MCP (Model Context Protocol) server for the
// pixel codec.
//
// The server speaks JSON-RPC 2.0 over stdio, one request per line on stdin
// and one response per line on stdout. Supported methods are initialize,
// tools/list, tools/call and ping.
//
// # Available Tools
//
//   - pixel_encode: Encode text or a file into a PNG (static or hidden mode)
//   - pixel_decode: Recover the payload from an image file or inline base64 PNG
//   - pixel_inspect: Report image metadata and the meta header, if any
//   - pixel_capacity: Plan an encode and report the maximum payload size
//   - pixel_generate_carrier: Write a noise image to use as a carrier
//
// Omitted mode, depth and carrier-size arguments fall back to the values in
// the server's configuration. Carrier images are cached by path for the life
// of the process unless server.cache_carriers is false.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with code
// -32000 and the Go error string in data. Unparseable lines get a -32700
// response with a null id.
//
// # Usage
//
//	cfg, err := config.Resolve("")
//	if err != nil {
//	    return err
//	}
//	srv := server.NewWithConfig(cfg, cfg.NewLogger())
//	return srv.Run()
package server
