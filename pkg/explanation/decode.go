package explanation

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DecodeJSON reads one explanation payload from r.
func DecodeJSON(r io.Reader) (*Explanation, error) {
	var e Explanation
	dec := json.NewDecoder(r)
	if err := dec.Decode(&e); err != nil {
		return nil, fmt.Errorf("decode explanation json: %w", err)
	}
	return &e, nil
}

// DecodeYAML reads one explanation payload from r.
func DecodeYAML(r io.Reader) (*Explanation, error) {
	var e Explanation
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&e); err != nil {
		return nil, fmt.Errorf("decode explanation yaml: %w", err)
	}
	return &e, nil
}

// DecodeFile reads a payload from disk, picking the codec by extension.
// Anything that is not .json is treated as YAML.
func DecodeFile(path string) (*Explanation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open explanation file: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return DecodeJSON(f)
	}
	return DecodeYAML(f)
}

// FromMap decodes a generic map (e.g. an already-parsed API response body)
// into a typed payload. Decoding is weakly typed so numeric fields survive
// float64/int/string ambiguity, and narration accepts both of its shapes.
func FromMap(m map[string]any) (*Explanation, error) {
	var e Explanation
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &e,
		WeaklyTypedInput: true,
		DecodeHook:       narrationHook,
	})
	if err != nil {
		return nil, fmt.Errorf("build payload decoder: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("decode explanation map: %w", err)
	}
	return &e, nil
}

var narrationType = reflect.TypeOf(Narration{})

// narrationHook teaches mapstructure the Narration variant: a bare string
// becomes plain narration, a map becomes language-keyed narration.
func narrationHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != narrationType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return NewNarration(v), nil
	case map[string]string:
		return NewLocalizedNarration(v), nil
	case map[string]any:
		m := make(map[string]string, len(v))
		for k, raw := range v {
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("narration[%s]: expected string, got %T", k, raw)
			}
			m[k] = s
		}
		return NewLocalizedNarration(m), nil
	case Narration:
		return v, nil
	default:
		return nil, fmt.Errorf("narration must be a string or a language map, got %T", data)
	}
}
