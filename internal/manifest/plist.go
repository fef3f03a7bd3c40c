package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"howett.net/plist"
)

// plistCodec handles property list manifests such as an Info.plist. The
// original encoding (XML, binary or OpenStep) is kept on write.
type plistCodec struct{}

func (plistCodec) decode(data []byte, keys Keys) (Data, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Data{}, nil
	}

	doc, _, err := decodePlist(data)
	if err != nil {
		return Data{}, err
	}

	var d Data
	switch v := doc[keys.Version].(type) {
	case nil:
	case string:
		d.Version = v
	default:
		return Data{}, fmt.Errorf("key %q is not a string", keys.Version)
	}
	switch v := doc[keys.Build].(type) {
	case string:
		d.Build = v
	case uint64:
		d.Build = strconv.FormatUint(v, 10)
	case int64:
		d.Build = strconv.FormatInt(v, 10)
	}
	return d, nil
}

func (plistCodec) encode(orig []byte, keys Keys, d Data) ([]byte, error) {
	doc := map[string]any{}
	format := plist.XMLFormat
	if len(bytes.TrimSpace(orig)) > 0 {
		var err error
		doc, format, err = decodePlist(orig)
		if err != nil {
			return nil, err
		}
	}

	doc[keys.Version] = d.Version
	if d.Build != "" {
		switch doc[keys.Build].(type) {
		case uint64, int64:
			n, err := strconv.ParseUint(d.Build, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("build counter %q: %w", d.Build, err)
			}
			doc[keys.Build] = n
		default:
			doc[keys.Build] = d.Build
		}
	}

	if format == plist.XMLFormat || format == plist.OpenStepFormat || format == plist.GNUStepFormat {
		return plist.MarshalIndent(doc, format, "\t")
	}
	return plist.Marshal(doc, format)
}

// decodePlist reads a property list whose root is a dictionary.
func decodePlist(data []byte) (map[string]any, int, error) {
	var root any
	format, err := plist.Unmarshal(data, &root)
	if err != nil {
		return nil, 0, err
	}
	doc, ok := root.(map[string]any)
	if !ok {
		return nil, 0, errors.New("root is not a dictionary")
	}
	return doc, format, nil
}
