// Package http implements the REST API of the reference cloud server.
//
// It exposes the client bootstrap, registration and token endpoints and the
// bearer-protected snapshot resource. Request tracing, access logging,
// Prometheus metrics and response compression are handled here before the
// request reaches the service layer.
package http
