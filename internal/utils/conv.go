package utils

import (
	"fmt"
	"strconv"
)

// ParseID parses a positive decimal id from a path or form value.
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}
