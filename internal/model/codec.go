package model

import (
	"encoding/json"
	"fmt"
)

// Encode renders items in the interchange format: a compact JSON array of
// {"title","status"} objects with no envelope. A nil list encodes as "[]".
func Encode(items []Item) (string, error) {
	if items == nil {
		items = []Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	return string(b), nil
}

// Decode parses the interchange format. Unknown fields are ignored.
func Decode(s string) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}
