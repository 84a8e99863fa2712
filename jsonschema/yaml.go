package jsonschema

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	goshape "github.com/reoring/goshape"
)

// ImportYAML decodes the first YAML document in data and imports it. Multi-
// document streams are accepted; empty documents are skipped.
func ImportYAML(data []byte, opts Options) (goshape.Schema, *goshape.Registry, Diag, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var node any
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, &simpleDiag{}, err
		}
		m := yamlAnyToStringMap(node)
		if m == nil {
			continue
		}
		return Import(m, opts)
	}
	return nil, nil, &simpleDiag{}, errors.New("jsonschema: no schema document in YAML input")
}

// yamlAnyToStringMap converts YAML-decoded values (which may contain
// map[any]any) into JSON-like map[string]any recursively. Non-map roots
// return nil.
func yamlAnyToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlAnyToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
