package transport

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// codecName is registered as a gRPC content-subtype. Dialing with
// grpc.CallContentSubtype(codecName) (or setting it as the server's
// default) lets a real gRPC client and server exchange the wire
// types in this repository without a protoc-generated descriptor --
// the specification treats the protobuf/gRPC byte framing itself as
// an external collaborator, but gRPC's transport (HTTP/2 framing,
// deadlines, metadata) is real and worth keeping.
const codecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return codecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
