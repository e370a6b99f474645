package explanation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayloadJSON = `{
  "protocol_version": 1,
  "summary": "Recap",
  "language": "en",
  "steps": [
    {
      "id": "s1",
      "title": "Find the slope",
      "narration": {"en": "Look at the slope.", "zh": "看斜率。"},
      "duration_ms": 1000,
      "delay_ms": 200,
      "animations": [
        {"target": "passage", "text": "slope", "action": "underline"}
      ],
      "board_notes": ["y = mx + b"]
    }
  ]
}`

func TestDecodeJSON(t *testing.T) {
	e, err := DecodeJSON(strings.NewReader(samplePayloadJSON))
	require.NoError(t, err)

	assert.Equal(t, 1, e.ProtocolVersion)
	assert.Equal(t, "Recap", e.Summary)
	require.Len(t, e.Steps, 1)

	s := e.Steps[0]
	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, "Look at the slope.", s.Narration.Resolve("en"))
	require.NotNil(t, s.DurationMS)
	assert.Equal(t, 1000, *s.DurationMS)
	require.NotNil(t, s.DelayMS)
	assert.Equal(t, 200, *s.DelayMS)
	require.Len(t, s.Animations, 1)
	assert.Equal(t, ActionUnderline, s.Animations[0].Action)

	_, err = DecodeJSON(strings.NewReader("{not json"))
	assert.Error(t, err)
}

func TestDecodeYAML(t *testing.T) {
	src := `
summary: Recap
steps:
  - id: s1
    narration: Look at the slope.
    delay_ms: 0
  - id: s2
    narration:
      en: Second step
`
	e, err := DecodeYAML(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, e.Steps, 2)

	assert.Equal(t, "Look at the slope.", e.Steps[0].Narration.Resolve("en"))
	require.NotNil(t, e.Steps[0].DelayMS)
	assert.Equal(t, 0, *e.Steps[0].DelayMS)
	assert.Nil(t, e.Steps[0].DurationMS)
	assert.Equal(t, "Second step", e.Steps[1].Narration.Resolve("en"))
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "payload.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(samplePayloadJSON), 0o644))

	yamlPath := filepath.Join(dir, "payload.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("summary: Recap\nsteps:\n  - id: s1\n    narration: hi\n"), 0o644))

	e, err := DecodeFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "s1", e.Steps[0].ID)

	e, err = DecodeFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "Recap", e.Summary)

	_, err = DecodeFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestFromMap(t *testing.T) {
	t.Run("string narration and float durations", func(t *testing.T) {
		e, err := FromMap(map[string]any{
			"summary": "Recap",
			"steps": []any{
				map[string]any{
					"id":          "s1",
					"narration":   "plain text",
					"duration_ms": float64(1000), // JSON numbers arrive as float64
				},
			},
		})
		require.NoError(t, err)
		require.Len(t, e.Steps, 1)
		assert.Equal(t, "plain text", e.Steps[0].Narration.Resolve("en"))
		require.NotNil(t, e.Steps[0].DurationMS)
		assert.Equal(t, 1000, *e.Steps[0].DurationMS)
	})

	t.Run("map narration", func(t *testing.T) {
		e, err := FromMap(map[string]any{
			"steps": []any{
				map[string]any{
					"narration": map[string]any{"en": "hi", "zh": "你好"},
				},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "你好", e.Steps[0].Narration.Resolve("zh"))
	})

	t.Run("rejects non-string narration values", func(t *testing.T) {
		_, err := FromMap(map[string]any{
			"steps": []any{
				map[string]any{"narration": map[string]any{"en": 42}},
			},
		})
		assert.Error(t, err)
	})
}
