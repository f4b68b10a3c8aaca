// ABOUTME: Package documentation for the store package
// ABOUTME: Explains the bbolt layout and record encoding

// Package store persists the chat room catalog in a single bbolt file.
//
// Three top-level buckets hold users, chats and posts. Users and chats are
// keyed by their little-endian id; posts live in one child bucket per chat,
// keyed by a per-chat sequence number so replay preserves insertion order.
// Values are the same proto3 encoding the RPC layer speaks.
package store
