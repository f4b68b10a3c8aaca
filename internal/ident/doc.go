// ABOUTME: Package documentation for the ident package
// ABOUTME: Explains deterministic versus random id spaces

// Package ident derives the ids of the chat room. User ids and most chat
// ids are deterministic hashes of their identifying data, which is what
// makes registration idempotent and lets two members converge on the same
// dialog. Post ids are random. Zero is reserved in every id space.
package ident
