// Package server holds the HTTP server configuration.
//
// The main application entry point (cmd/start.go) handles the server startup;
// this package defines the listen port, the API key enforced by the auth
// middleware and the request body limit.
//
// # Usage
//
// This package is embedded by core/config and read by cmd/start.go.
package server
