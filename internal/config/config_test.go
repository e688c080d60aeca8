package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"munidocs/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Empty(t, cfg.LLM.DefaultModel)
	assert.Equal(t, 0.0000025, cfg.LLM.RateIn)
	assert.Equal(t, 0.00001, cfg.LLM.RateOut)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.S3.Enabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MUNIDOCS_LLM_PROVIDER", "claude")
	t.Setenv("MUNIDOCS_LLM_API_KEY", "sk-test")
	t.Setenv("MUNIDOCS_INSTITUTION_NAME", "Municipalidad de Prueba")
	t.Setenv("MUNIDOCS_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("MUNIDOCS_S3_BUCKET", "archivo")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "Municipalidad de Prueba", cfg.Institution.Name)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.S3.Enabled())
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("PORT", "9999")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Port)
}

func TestValidate_ReportsMissingSecretsByName(t *testing.T) {
	cfg := &config.Config{
		DB: config.DBConfig{Host: "localhost"},
	}

	errs := cfg.Validate()

	require.Len(t, errs, 2)
	assert.Equal(t, "MUNIDOCS_LLM_API_KEY", errs[0].Key)
	assert.Equal(t, "MUNIDOCS_JWT_SECRET", errs[1].Key)
}

func TestValidate_DoesNotEchoSecrets(t *testing.T) {
	cfg := &config.Config{
		LLM: config.LLMConfig{APIKey: "sk-very-secret"},
		DB:  config.DBConfig{URL: "postgres://x"},
	}

	for _, e := range cfg.Validate() {
		assert.NotContains(t, e.Error(), "sk-very-secret")
	}
}

func TestDBConfig_DSN(t *testing.T) {
	d := config.DBConfig{User: "u", Password: "p", Host: "h", Port: 5432, Name: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/n?sslmode=disable", d.DSN())

	d.URL = "postgres://override"
	assert.Equal(t, "postgres://override", d.DSN())
}
