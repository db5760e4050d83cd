package model

import "strings"

// SeatMetadata annotates a seat slot with a description and amenity tags.
// It is independent of booking state and is replaced wholesale on every
// write.
type SeatMetadata struct {
	Key         SeatKey  `json:"key"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// ParseFeatures splits a comma separated list, trims every entry and
// drops empty ones.  The result is never nil.
func ParseFeatures(csv string) []string {
	out := []string{}
	for _, f := range strings.Split(csv, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
