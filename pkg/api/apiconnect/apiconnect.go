// Package apiconnect wires the api messages to Connect handlers and clients.
package apiconnect

import (
	"connectrpc.com/connect"

	"github.com/mohdrazakhan/oneroom/pkg/api"
)

// withJSON puts the plain-struct JSON codec in front of any caller options.
// It replaces Connect's protobuf JSON codec under the same name.
func withJSON(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
}

func withJSONClient(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
}
