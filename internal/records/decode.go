package records

import (
	"errors"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned by DecodeRows for malformed input.
var ErrInvalidJSON = errors.New("records: invalid JSON")

// DecodeRows parses a JSON array of row objects. A top-level object with a
// "data" or "rows" array is accepted too. Entries that are not objects are
// skipped.
func DecodeRows(data []byte) ([]Row, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}

	root := gjson.ParseBytes(data)
	if root.IsObject() {
		for _, key := range []string{"data", "rows"} {
			if arr := root.Get(key); arr.IsArray() {
				root = arr
				break
			}
		}
	}
	if !root.IsArray() {
		return nil, ErrInvalidJSON
	}

	var rows []Row
	root.ForEach(func(_, value gjson.Result) bool {
		if !value.IsObject() {
			return true
		}
		if m, ok := value.Value().(map[string]any); ok {
			rows = append(rows, Row(m))
		}
		return true
	})
	return rows, nil
}

// DecodeRow parses a single JSON object.
func DecodeRow(data []byte) (Row, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	v := gjson.ParseBytes(data)
	m, ok := v.Value().(map[string]any)
	if !ok {
		return nil, ErrInvalidJSON
	}
	return Row(m), nil
}
