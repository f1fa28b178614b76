// Package parse loads JSON (and YAML) text into ir trees. Loading
// is the only place the query engine touches external input; it
// runs once per document and is never retried.
package parse

import (
	"bytes"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/signadot/jsonq/ir"
)

// Parse decodes JSON text into an ir tree. Object key order is
// preserved; a duplicated key keeps its first position and takes
// the last value.
func Parse(data []byte) (*ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	node, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w at offset %d: %v", ErrParse, dec.InputOffset(), err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w at offset %d: trailing data", ErrParse, dec.InputOffset())
	}
	return node, nil
}

func ParseString(text string) (*ir.Node, error) {
	return Parse([]byte(text))
}

// ParseFile reads and parses a JSON document from path.
func ParseFile(path string) (*ir.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFile, err)
	}
	return Parse(data)
}

func decodeValue(dec *json.Decoder) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFrom(dec, tok)
}

func decodeFrom(dec *json.Decoder, tok json.Token) (*ir.Node, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", v.String())
	case string:
		return ir.FromString(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return ir.FromFloat(f), nil
	case bool:
		return ir.FromBool(v), nil
	case nil:
		return ir.Null(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (*ir.Node, error) {
	var kvs []ir.KeyVal
	seen := map[string]int{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T, not a string", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		if at, dup := seen[key]; dup {
			kvs[at].Val = val
			continue
		}
		seen[key] = len(kvs)
		kvs = append(kvs, ir.KeyVal{Key: key, Val: val})
	}
	// closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return ir.FromKeyVals(kvs), nil
}

func decodeArray(dec *json.Decoder) (*ir.Node, error) {
	var vals []*ir.Node
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		vals = append(vals, val)
	}
	// closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return ir.FromSlice(vals), nil
}
