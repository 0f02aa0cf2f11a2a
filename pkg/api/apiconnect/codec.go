// Package apiconnect wires the receiptbook.v1 services to Connect handlers
// and clients.
package apiconnect

import (
	"encoding/json"
	"errors"

	"connectrpc.com/connect"
)

// PackagePrefix starts the name of every receiptbook.v1 service.
const PackagePrefix = "receiptbook.v1."

// codec encodes messages as plain JSON. It registers under the name "json"
// so it replaces Connect's protobuf JSON codec for application/json.
type codec struct{}

var _ connect.Codec = codec{}

func (codec) Name() string { return "json" }

func (codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return errors.New("zero-length payload is not a valid JSON object")
	}
	return json.Unmarshal(data, msg)
}

// WithJSON is the codec option every handler and client in this package uses.
func WithJSON() connect.Option {
	return connect.WithCodec(codec{})
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{WithJSON()}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{WithJSON()}, opts...)
}
