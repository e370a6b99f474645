package explanation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNarrationResolve(t *testing.T) {
	tests := []struct {
		name      string
		narration Narration
		lang      string
		want      string
	}{
		{"plain string ignores language", NewNarration("hello"), "zh", "hello"},
		{"requested language wins", NewLocalizedNarration(map[string]string{"en": "hi", "zh": "你好"}), "zh", "你好"},
		{"missing language falls back to english", NewLocalizedNarration(map[string]string{"en": "hi", "zh": "你好"}), "fr", "hi"},
		{"empty entry falls through", NewLocalizedNarration(map[string]string{"fr": "", "en": "hi"}), "fr", "hi"},
		{"no english falls back to chinese", NewLocalizedNarration(map[string]string{"zh": "你好"}), "fr", "你好"},
		{"nothing usable resolves empty", NewLocalizedNarration(map[string]string{"fr": ""}), "fr", ""},
		{"zero value resolves empty", Narration{}, "en", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.narration.Resolve(tt.lang))
		})
	}
}

func TestNarrationIsZero(t *testing.T) {
	assert.True(t, Narration{}.IsZero())
	assert.False(t, NewNarration("x").IsZero())
	assert.False(t, NewLocalizedNarration(map[string]string{"en": "x"}).IsZero())
}

func TestNarrationJSON(t *testing.T) {
	t.Run("string shape", func(t *testing.T) {
		var n Narration
		require.NoError(t, json.Unmarshal([]byte(`"walk through it"`), &n))
		assert.Equal(t, "walk through it", n.Resolve(LangEN))

		out, err := json.Marshal(n)
		require.NoError(t, err)
		assert.JSONEq(t, `"walk through it"`, string(out))
	})

	t.Run("map shape", func(t *testing.T) {
		var n Narration
		require.NoError(t, json.Unmarshal([]byte(`{"en":"hi","zh":"你好"}`), &n))
		assert.Equal(t, "你好", n.Resolve(LangZH))

		out, err := json.Marshal(n)
		require.NoError(t, err)
		assert.JSONEq(t, `{"en":"hi","zh":"你好"}`, string(out))
	})

	t.Run("rejects other shapes", func(t *testing.T) {
		var n Narration
		assert.Error(t, json.Unmarshal([]byte(`42`), &n))
		assert.Error(t, json.Unmarshal(json.RawMessage(`["a"]`), &n))
	})
}

func TestNarrationYAML(t *testing.T) {
	t.Run("string shape", func(t *testing.T) {
		var n Narration
		require.NoError(t, yaml.Unmarshal([]byte(`look here`), &n))
		assert.Equal(t, "look here", n.Resolve(LangEN))
	})

	t.Run("map shape", func(t *testing.T) {
		var n Narration
		require.NoError(t, yaml.Unmarshal([]byte("en: hi\nzh: 你好\n"), &n))
		assert.Equal(t, "hi", n.Resolve(LangEN))
	})

	t.Run("rejects sequences", func(t *testing.T) {
		var n Narration
		assert.Error(t, yaml.Unmarshal([]byte("- a\n- b\n"), &n))
	})
}
