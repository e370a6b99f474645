package explanation

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Well-known narration language codes. The fallback chain is fixed:
// requested language, then English, then Chinese, then empty.
const (
	LangEN = "en"
	LangZH = "zh"
)

// Narration is a tagged variant: either a single plain string or a mapping
// from language code to string. The zero value resolves to "".
type Narration struct {
	text   string
	byLang map[string]string
}

// NewNarration wraps a plain narration string.
func NewNarration(text string) Narration {
	return Narration{text: text}
}

// NewLocalizedNarration wraps a language-keyed narration map.
func NewLocalizedNarration(byLang map[string]string) Narration {
	return Narration{byLang: byLang}
}

// Resolve returns the narration for the requested language, falling back to
// English, then Chinese, then the empty string. Empty narration means
// "nothing to show", never an error.
func (n Narration) Resolve(lang string) string {
	if n.byLang == nil {
		return n.text
	}
	if lang != "" {
		if s, ok := n.byLang[lang]; ok && s != "" {
			return s
		}
	}
	if s, ok := n.byLang[LangEN]; ok && s != "" {
		return s
	}
	if s, ok := n.byLang[LangZH]; ok && s != "" {
		return s
	}
	return ""
}

// IsZero reports whether no narration was provided in any shape.
func (n Narration) IsZero() bool {
	return n.text == "" && len(n.byLang) == 0
}

func (n Narration) MarshalJSON() ([]byte, error) {
	if n.byLang != nil {
		return json.Marshal(n.byLang)
	}
	return json.Marshal(n.text)
}

func (n *Narration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = Narration{text: s}
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("narration must be a string or a language map: %w", err)
	}
	*n = Narration{byLang: m}
	return nil
}

func (n Narration) MarshalYAML() (any, error) {
	if n.byLang != nil {
		return n.byLang, nil
	}
	return n.text, nil
}

func (n *Narration) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*n = Narration{text: s}
		return nil
	case yaml.MappingNode:
		var m map[string]string
		if err := value.Decode(&m); err != nil {
			return err
		}
		*n = Narration{byLang: m}
		return nil
	default:
		return fmt.Errorf("narration must be a string or a language map, got yaml kind %d", value.Kind)
	}
}
