package note

import (
	"encoding/json"
	"fmt"
)

// EncodeCollection serializes notes, newest first, as a JSON array.
// A nil collection encodes as an empty array.
func EncodeCollection(notes []Note) ([]byte, error) {
	if notes == nil {
		notes = []Note{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return nil, fmt.Errorf("encode notes: %w", err)
	}
	return data, nil
}

// DecodeCollection parses a JSON array of notes. A JSON null decodes to an
// empty collection.
func DecodeCollection(data []byte) ([]Note, error) {
	var notes []Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	if notes == nil {
		notes = []Note{}
	}
	return notes, nil
}
