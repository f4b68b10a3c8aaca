// ABOUTME: gRPC codec bridging the hand-written wire encoding into grpc-go
// ABOUTME: Registered under the "proto" subtype so peers see application/grpc+proto

package migchat

import "fmt"

// Codec marshals migchat messages for grpc-go. It is installed with
// grpc.ForceServerCodec on the server and grpc.ForceCodec per call on the
// client, so it never touches the global codec registry.
type Codec struct{}

// Name reports "proto": the payloads are valid proto3, only produced by
// hand-written encoders instead of generated ones.
func (Codec) Name() string { return "proto" }

func (Codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("migchat codec: cannot marshal %T", v)
	}
	return m.AppendWire(nil), nil
}

func (Codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("migchat codec: cannot unmarshal into %T", v)
	}
	return m.UnmarshalWire(data)
}
