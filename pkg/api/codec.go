// Package api defines the OneRoom RPC messages.
//
// Messages are plain structs carried as JSON over the Connect protocol, so
// browser clients can call the API with fetch and no generated stubs.
package api

import (
	"encoding/json"
	"fmt"
)

// JSONCodec is a connect.Codec for plain Go structs.
type JSONCodec struct{}

// Name is the Connect codec name, matching the application/json content type.
func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return b, nil
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		// Connect sends an empty body for empty messages.
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}
