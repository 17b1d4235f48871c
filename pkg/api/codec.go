// Package api holds the splitledger.v1 wire types and their Connect
// handlers and clients.
//
// Messages are plain Go structs encoded as JSON. Every handler and client
// built here installs Codec, so both sides speak application/json (or
// application/connect+json for streaming content types).
package api

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// CodecName is the name Connect uses to pick Codec from the content type.
const CodecName = "json"

// Codec marshals messages with encoding/json.
type Codec struct{}

var _ connect.Codec = Codec{}

// Name implements connect.Codec.
func (Codec) Name() string { return CodecName }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

// Unmarshal implements connect.Codec. An empty body leaves msg untouched.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}

func withCodec[O any](opts []O, codec O) []O {
	out := make([]O, 0, len(opts)+1)
	out = append(out, codec)
	return append(out, opts...)
}
