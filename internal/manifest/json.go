package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// jsonCodec edits JSON manifests in place: only the bytes of the version and
// build values change, so key order, indentation and every other field are
// preserved exactly.
type jsonCodec struct{}

func (jsonCodec) decode(data []byte, keys Keys) (Data, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Data{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return Data{}, err
	}
	if doc == nil {
		return Data{}, errors.New("top level is not an object")
	}

	var d Data
	switch v := doc[keys.Version].(type) {
	case nil:
	case string:
		d.Version = v
	case json.Number:
		d.Version = v.String()
	default:
		return Data{}, fmt.Errorf("field %q is not a string", keys.Version)
	}
	switch v := doc[keys.Build].(type) {
	case string:
		d.Build = v
	case json.Number:
		d.Build = v.String()
	}
	return d, nil
}

func (jsonCodec) encode(orig []byte, keys Keys, d Data) ([]byte, error) {
	if len(bytes.TrimSpace(orig)) == 0 {
		orig = []byte("{}\n")
	}

	version, err := json.Marshal(d.Version)
	if err != nil {
		return nil, err
	}
	out, err := setJSONField(orig, keys.Version, func(json.RawMessage) []byte { return version })
	if err != nil {
		return nil, err
	}

	if d.Build == "" {
		return out, nil
	}
	return setJSONField(out, keys.Build, func(existing json.RawMessage) []byte {
		// Keep a quoted counter quoted.
		if len(existing) > 0 && existing[0] == '"' {
			quoted, _ := json.Marshal(d.Build)
			return quoted
		}
		return []byte(d.Build)
	})
}

// jsonObject describes the top-level object of a JSON document by byte offsets.
type jsonObject struct {
	open   int
	close  int
	fields map[string][2]int // value start and end
	last   int               // end of the last value, -1 when empty
}

// scanJSONObject locates the top-level fields of data.
func scanJSONObject(data []byte) (*jsonObject, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("top level is not an object")
	}

	obj := &jsonObject{
		open:   int(dec.InputOffset()) - 1,
		fields: map[string][2]int{},
		last:   -1,
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}

		afterKey := int(dec.InputOffset())
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		end := int(dec.InputOffset())
		start := afterKey + bytes.Index(data[afterKey:end], raw)

		obj.fields[key] = [2]int{start, start + len(raw)}
		obj.last = start + len(raw)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	obj.close = int(dec.InputOffset()) - 1

	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level object")
	}
	return obj, nil
}

// setJSONField replaces the value of key, or appends the key when absent.
func setJSONField(data []byte, key string, value func(existing json.RawMessage) []byte) ([]byte, error) {
	obj, err := scanJSONObject(data)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if span, ok := obj.fields[key]; ok {
		out.Write(data[:span[0]])
		out.Write(value(data[span[0]:span[1]]))
		out.Write(data[span[1]:])
		return out.Bytes(), nil
	}

	quotedKey, err := json.Marshal(key)
	if err != nil {
		return nil, err
	}
	field := string(quotedKey) + ": " + string(value(nil))

	if obj.last < 0 {
		out.Write(data[:obj.open+1])
		out.WriteString("\n  " + field + "\n")
		out.Write(data[obj.close:])
		return out.Bytes(), nil
	}

	sep := " "
	if indent, ok := lineIndent(data, obj.last); ok {
		sep = "\n" + indent
	}
	out.Write(data[:obj.last])
	out.WriteString("," + sep + field)
	out.Write(data[obj.last:])
	return out.Bytes(), nil
}

// lineIndent returns the leading whitespace of the line holding offset pos.
// The second result is false when the object is written on a single line.
func lineIndent(data []byte, pos int) (string, bool) {
	lineStart := bytes.LastIndexByte(data[:pos], '\n') + 1
	if lineStart == 0 {
		return "", false
	}
	line := data[lineStart:pos]
	trimmed := bytes.TrimLeft(line, " \t")
	return string(line[:len(line)-len(trimmed)]), true
}
