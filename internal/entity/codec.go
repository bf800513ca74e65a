package entity

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ToWire converts a storage-shaped record into its wire shape: every blob
// column is parsed into its structured field and removed from the result.
// Unparseable or absent blob text degrades to the field's fallback value
// (empty array or nil); the function never fails. Kinds without blob columns
// pass through with only a defensive copy.
func ToWire(d Descriptor, record map[string]any) map[string]any {
	if record == nil {
		return nil
	}
	out := make(map[string]any, len(record)+len(d.blobs))
	for k, v := range record {
		out[k] = v
	}
	for _, blob := range d.blobs {
		out[blob.wire] = parseBlob(out[blob.storage], blob.fallback)
		delete(out, blob.storage)
	}
	return out
}

// ToStorage performs the inverse translation: structured wire fields are
// serialized back into their blob columns, and loosely-typed numeric id
// fields are normalized to integers (or nil when conversion fails). Wire
// fields carrying the wrong shape are dropped without touching the stored
// column, mirroring partial-update semantics.
func ToStorage(d Descriptor, record map[string]any) map[string]any {
	if record == nil {
		return nil
	}
	out := make(map[string]any, len(record))
	for k, v := range record {
		out[k] = v
	}
	for _, blob := range d.blobs {
		value, present := out[blob.wire]
		if !present {
			continue
		}
		if serialized, ok := serializeBlob(value, blob.fallback); ok {
			out[blob.storage] = serialized
		}
		delete(out, blob.wire)
	}
	for _, field := range d.numericFields {
		if value, present := out[field]; present {
			out[field] = normalizeNumeric(value)
		}
	}
	return out
}

func parseBlob(raw any, fallback fallbackKind) any {
	text := ""
	switch v := raw.(type) {
	case string:
		text = v
	case []byte:
		text = string(v)
	}
	if text == "" {
		return fallbackValue(fallback)
	}
	decoder := json.NewDecoder(bytes.NewReader([]byte(text)))
	decoder.UseNumber()
	var parsed any
	if err := decoder.Decode(&parsed); err != nil || parsed == nil {
		return fallbackValue(fallback)
	}
	switch fallback {
	case fallbackArray:
		if _, ok := parsed.([]any); !ok {
			return fallbackValue(fallback)
		}
	case fallbackNull:
		if _, ok := parsed.(map[string]any); !ok {
			return fallbackValue(fallback)
		}
	}
	return parsed
}

func serializeBlob(value any, fallback fallbackKind) (string, bool) {
	switch fallback {
	case fallbackArray:
		if _, ok := value.([]any); !ok {
			return "", false
		}
	case fallbackNull:
		if _, ok := value.(map[string]any); !ok {
			return "", false
		}
	}
	data, err := json.Marshal(value)
	if err != nil {
		return "", false
	}
	return string(data), true
}

func fallbackValue(kind fallbackKind) any {
	if kind == fallbackArray {
		return []any{}
	}
	return nil
}

// normalizeNumeric coerces an id that may arrive as a string or JSON number
// into an int64, or nil when no integer can be extracted.
func normalizeNumeric(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case int64:
		return v
	case int:
		return int64(v)
	case uint:
		return int64(v)
	case float64:
		return int64(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return int64(f)
		}
		return nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil
		}
		if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return int64(f)
		}
		return nil
	default:
		return nil
	}
}
