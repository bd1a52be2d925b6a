package maputil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type footer struct {
	ProjectName string        `json:"project_name"`
	SettingsURL string        `json:"settings_url"`
	EventCount  int           `json:"event_count"`
	Tags        []string      `json:"tags"`
	Window      time.Duration `json:"window"`
}

type namedContext map[string]any

func TestMerge(t *testing.T) {
	shared := namedContext{"project_name": "web", "settings_url": "https://example.com/settings"}
	extra := namedContext{"settings_url": "https://example.com/settings/alice"}

	merged := Merge(shared, nil, extra)

	assert.Equal(t, map[string]any{
		"project_name": "web",
		"settings_url": "https://example.com/settings/alice",
	}, merged)
	assert.Equal(t, "https://example.com/settings", shared["settings_url"], "입력 맵은 변경되지 않아야 합니다")
	assert.Empty(t, Merge[namedContext]())
}

func TestDecode(t *testing.T) {
	got, err := Decode[footer](map[string]any{
		"project_name": "web",
		"event_count":  "1234",
		"tags":         "prod, api",
		"window":       "5m",
		"unknown":      true,
	})
	require.NoError(t, err)

	assert.Equal(t, "web", got.ProjectName)
	assert.Equal(t, 1234, got.EventCount)
	assert.Equal(t, []string{"prod", " api"}, got.Tags)
	assert.Equal(t, 5*time.Minute, got.Window)
}

func TestDecode_Options(t *testing.T) {
	_, err := Decode[footer](map[string]any{"unknown": true}, WithErrorUnused(true))
	assert.Error(t, err)

	_, err = Decode[footer](map[string]any{"event_count": "12"}, WithWeaklyTypedInput(false))
	assert.Error(t, err)

	type tagged struct {
		Name string `mapstructure:"name"`
	}
	got, err := Decode[tagged](map[string]any{"name": "x"}, WithTagName("mapstructure"))
	require.NoError(t, err)
	assert.Equal(t, "x", got.Name)
}

func TestDecodeTo_NilOutput(t *testing.T) {
	var out *footer
	assert.Error(t, DecodeTo(map[string]any{}, out))
}
