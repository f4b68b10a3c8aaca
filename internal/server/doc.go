// ABOUTME: Package documentation for the server package
// ABOUTME: Explains server composition and lifecycle management

// Package server assembles and runs the migchat-server process: the bbolt
// store, the chat room service on a gRPC listener and an optional HTTP
// listener with health endpoints. Run blocks until the context is canceled
// and then shuts everything down gracefully.
package server
