package gateway

import (
	"encoding/json"
	"fmt"
)

// GatewayError reports a transport failure, a non-success status from the
// provider or an empty payload.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// ValidationError reports a payload that is not JSON, breaks the declared
// schema, or cannot be decoded into the caller's type.
type ValidationError struct {
	Schema  string
	Content json.RawMessage
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s payload: %v", e.Schema, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
