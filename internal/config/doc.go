// Package config loads, merges and validates the configuration of the
// dashboard client and the reference cloud server.
//
// Sources are applied in this order, later non-zero fields win:
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON config file (-c / -config / CONFIG)
//
// [GetClientConfig] and [GetServerConfig] return the validated view each
// binary needs.
package config
