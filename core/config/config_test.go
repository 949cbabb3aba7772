package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())

	assert.Equal(t, "", cfg.Dir())
	assert.Equal(t, "", cfg.HistoryPath())
	assert.False(t, cfg.EventLogEnabled())

	_, err := cfg.OpenAppLog()
	assert.ErrorIs(t, err, ErrNoConfigDir)
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		mutate func(*Configuration)
		field  string
	}{
		"valid":          {func(*Configuration) {}, ""},
		"color never":    {func(c *Configuration) { c.Color = "never" }, ""},
		"no history":     {func(c *Configuration) { c.HistoryFile = "" }, ""},
		"bad color":      {func(c *Configuration) { c.Color = "sometimes" }, "color"},
		"empty marker":   {func(c *Configuration) { c.PromptMarker = "" }, "prompt_marker"},
		"negative limit": {func(c *Configuration) { c.HistoryLimit = -1 }, "history_limit"},
		"nested history": {func(c *Configuration) { c.HistoryFile = "../history" }, "history_file"},
		"nested app log": {func(c *Configuration) { c.AppLog = "/var/log/msh" }, "app_log"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.field == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.field)
			}
		})
	}
}
