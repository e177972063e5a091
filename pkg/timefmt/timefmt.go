// Package timefmt normalizes wall-clock time-of-day values to the
// canonical HH:MM:SS form used for storage and responses.
package timefmt

import (
	"fmt"
	"time"
)

const canonical = "15:04:05"

var layouts = []string{
	"15:04:05.999999999",
	"15:04:05",
	"15:04",
}

// Normalize round-trips a time-of-day string through its canonical
// HH:MM:SS representation. Sub-second precision is truncated to whole
// seconds; this lossy normalization is part of the storage contract.
func Normalize(value string) (string, error) {
	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.Format(canonical), nil
		}
	}
	return "", fmt.Errorf("invalid time value %q, expected HH:MM:SS", value)
}

// NormalizePtr applies Normalize through an optional value, mapping nil
// to nil.
func NormalizePtr(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	normalized, err := Normalize(*value)
	if err != nil {
		return nil, err
	}
	return &normalized, nil
}
