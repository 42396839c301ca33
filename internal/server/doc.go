// Package server wires and runs the snapshot API server.
//
// It owns the HTTP server lifecycle: startup, signal handling and graceful
// shutdown.
package server
