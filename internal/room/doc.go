// ABOUTME: Package documentation for the room package
// ABOUTME: Explains the ChatRoomService implementation and its fan-out model

// Package room implements migchat.ChatRoomServiceServer: the chat room's
// unary operations and its four server-streaming feeds.
//
// One Room instance serves all connections. Durable state (users, chats,
// posts) lives in the store; volatile state is the presence set and one
// subscription registry per feed. Unary handlers mutate the store first and
// then fan events out to the registries; streaming handlers replay current
// state from the store and then forward live events from their subscription
// until the client goes away or a newer stream of the same kind replaces
// them.
package room
