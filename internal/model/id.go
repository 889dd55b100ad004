package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID identifies a record inside one collection.
//
// Records written by the browser build carry numeric ids (millisecond
// timestamps) while users and sessions may carry strings such as "admin" or an
// email address. ID accepts both on decode and writes canonical integers back as
// JSON numbers so such records round-trip unchanged.
type ID string

// MarshalJSON writes integer ids as numbers and everything else as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if isCanonicalInt(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a JSON string, a JSON number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || string(data) == "null":
		*id = ""
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("decode id %s: %w", data, err)
		}
		*id = ID(n.String())
		return nil
	}
}

func (id ID) String() string { return string(id) }

// isCanonicalInt reports whether s is an integer literal without sign
// ambiguity or leading zeros, short enough to stay exact in a float64.
func isCanonicalInt(s string) bool {
	if s == "" {
		return false
	}
	digits := s
	if digits[0] == '-' {
		digits = digits[1:]
	}
	if digits == "" || len(digits) > 15 {
		return false
	}
	if len(digits) > 1 && digits[0] == '0' {
		return false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != "-0"
}
