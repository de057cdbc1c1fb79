// Package uuid wraps google/uuid so that IDs can be bound directly from URI
// and query parameters.
package uuid

import (
	google_uuid "github.com/google/uuid"
	"github.com/homecents/backend/internal/httputil"
)

type UUID struct {
	google_uuid.UUID
}

// Nil is the zero UUID. Filter parameters that were not set in the request
// bind to it.
var Nil UUID

// UnmarshalParam implements gin's binding.BindUnmarshaler.
func (u *UUID) UnmarshalParam(p string) error {
	// An empty parameter is an unset one, not an error
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, err := google_uuid.Parse(p)
	if err != nil {
		return httputil.ErrInvalidUUID
	}

	*u = UUID{parsed}
	return nil
}
