package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foredeck/foredeck/schema"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		DatasetDirStr: "./data",
		View:          "evaluation",
		Output:        "text",
		CacheBackend:  "sqlite",
		Limit:         50,
		Precision:     2,
		Color:         "yes",
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, "./data", cfg.DatasetDir)
	assert.Equal(t, schema.EvaluationView, cfg.View)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.CacheBackend)
	assert.True(t, cfg.UseColors)
	assert.Nil(t, cfg.Window.StartTs)
	assert.Nil(t, cfg.Window.EndTs)
	assert.Equal(t, ".", cfg.ChartDir)
	assert.Equal(t, DefaultChartWidth, cfg.ChartWidth)
	assert.Equal(t, DefaultChartHeight, cfg.ChartHeight)
}

func TestProcessAndValidateWindow(t *testing.T) {
	input := validInput()
	input.Start = "2024-01-01"
	input.End = "2024-06-30"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	require.NotNil(t, cfg.Window.StartTs)
	require.NotNil(t, cfg.Window.EndTs)
	assert.Less(t, *cfg.Window.StartTs, *cfg.Window.EndTs)
}

func TestProcessAndValidateLists(t *testing.T) {
	input := validInput()
	input.Fields = "actual, baseline ,"
	input.Drivers = "holiday,temperature"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, []string{"actual", "baseline"}, cfg.Fields)
	assert.Equal(t, []string{"holiday", "temperature"}, cfg.DriverKeys)
}

func TestProcessAndValidateFeedURLs(t *testing.T) {
	input := validInput()
	input.FeedURL = "https://a.example/feed, https://b.example/feed ,"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, []string{"https://a.example/feed", "https://b.example/feed"}, cfg.FeedURLs)

	input.FeedURL = ""
	cfg = &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Nil(t, cfg.FeedURLs)
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(profile, "perf"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "perf", profile.Prefix)
}

func TestProcessAndValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{"bad view", func(in *ConfigRawInput) { in.View = "sideways" }},
		{"bad output", func(in *ConfigRawInput) { in.Output = "xml" }},
		{"bad backend", func(in *ConfigRawInput) { in.CacheBackend = "oracle" }},
		{"limit too low", func(in *ConfigRawInput) { in.Limit = 0 }},
		{"limit too high", func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }},
		{"bad precision", func(in *ConfigRawInput) { in.Precision = 11 }},
		{"bad color", func(in *ConfigRawInput) { in.Color = "maybe" }},
		{"bad start date", func(in *ConfigRawInput) { in.Start = "tomorrow" }},
		{"bad end date", func(in *ConfigRawInput) { in.End = "eventually" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			assert.Error(t, ProcessAndValidate(&Config{}, input))
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{
		DatasetDir: "./data",
		Fields:     []string{"actual"},
		DriverKeys: []string{"holiday"},
		FeedURLs:   []string{"https://a.example/feed"},
	}
	clone := cfg.Clone()
	clone.Fields[0] = "baseline"
	clone.FeedURLs[0] = "https://other.example/feed"
	clone.DatasetDir = "./other"

	assert.Equal(t, "actual", cfg.Fields[0])
	assert.Equal(t, "https://a.example/feed", cfg.FeedURLs[0])
	assert.Equal(t, "./data", cfg.DatasetDir)
}
