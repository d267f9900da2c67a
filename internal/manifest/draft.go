package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
)

// Draft is a package manifest being edited. It holds compact JSON so that
// edits keep existing keys in place and append new keys at the end.
type Draft struct {
	data []byte
}

// Parse loads a manifest. The document must be a JSON object.
func Parse(data []byte) (*Draft, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, fmt.Errorf("parsing manifest JSON: %w", err)
	}
	if buf.Len() == 0 || buf.Bytes()[0] != '{' {
		return nil, errors.New("parsing manifest JSON: top-level value is not an object")
	}
	return &Draft{data: buf.Bytes()}, nil
}

// String returns the string value of key. ok is false when the key is missing
// or not a string.
func (d *Draft) String(key string) (value string, ok bool) {
	v, err := jsonparser.GetString(d.data, key)
	if err != nil {
		return "", false
	}
	return v, true
}

// truthy reports whether key holds a value other than null, false, 0, or "".
func (d *Draft) truthy(key string) bool {
	raw, typ, _, err := jsonparser.Get(d.data, key)
	if err != nil {
		return false
	}
	switch typ {
	case jsonparser.NotExist, jsonparser.Null:
		return false
	case jsonparser.Boolean:
		return string(raw) == "true"
	case jsonparser.String:
		return len(raw) > 0
	case jsonparser.Number:
		f, err := jsonparser.ParseFloat(raw)
		return err == nil && f != 0
	default:
		return true
	}
}

// Set replaces key with the JSON encoding of value, adding it if absent.
func (d *Draft) Set(key string, value any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	out, err := jsonparser.Set(d.data, bytes.TrimSpace(buf.Bytes()), key)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	d.data = out
	return nil
}

// Name returns the manifest name, or "" if unset.
func (d *Draft) Name() string {
	v, _ := d.String("name")
	return v
}

// Version returns the manifest version, or "" if unset.
func (d *Draft) Version() string {
	v, _ := d.String("version")
	return v
}

// Bytes renders the draft as two-space indented JSON with a trailing newline.
func (d *Draft) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, d.data, "", "  "); err != nil {
		return nil, fmt.Errorf("formatting manifest: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
