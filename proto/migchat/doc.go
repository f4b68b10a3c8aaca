// Package migchat defines the wire contract of the chat room service.
//
// The contract is migchat.proto. Instead of checking in generated code, the
// package implements the proto3 encoding by hand on top of
// google.golang.org/protobuf/encoding/protowire and provides the gRPC plumbing
// a generated package would: message types (types.go), their encoding
// (wire.go), a codec (codec.go) and the service descriptor with client and
// server bindings (grpc.go).
//
// Server side:
//
//	srv := grpc.NewServer(grpc.ForceServerCodec(migchat.Codec{}))
//	migchat.RegisterChatRoomServiceServer(srv, impl)
//
// Client side:
//
//	conn, _ := grpc.NewClient(addr,
//	    grpc.WithTransportCredentials(insecure.NewCredentials()),
//	    grpc.WithDefaultCallOptions(grpc.ForceCodec(migchat.Codec{})))
//	client := migchat.NewChatRoomServiceClient(conn)
//
// The same encoding doubles as the storage record format, so a record read
// from disk and a message read from the network decode through one code path.
package migchat
