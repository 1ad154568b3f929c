package validate

import (
	"strings"

	"github.com/google/uuid"
)

func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}

// UUID reports whether value is a canonical UUID. Profile and admin ids in the
// backend are uuid columns; anything else would fail there with a cast error.
func UUID(value string) bool {
	_, err := uuid.Parse(strings.TrimSpace(value))
	return err == nil
}
