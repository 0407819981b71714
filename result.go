package sharepoint

import (
	"encoding/json"
	"fmt"
)

// Result is the raw JSON payload of a successful request. The payload is
// opaque: no schema is imposed on the target API's entities. A nil Result
// from a terminal verb in ignore mode means the request did not succeed.
type Result []byte

// JSON unmarshals the payload into the provided destination.
func (r Result) JSON(v interface{}) error {
	if len(r) == 0 {
		return fmt.Errorf("result is empty")
	}

	if v == nil {
		return fmt.Errorf("destination variable is nil")
	}

	if err := json.Unmarshal(r, v); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}

// String returns the payload as a string.
func (r Result) String() string {
	return string(r)
}
