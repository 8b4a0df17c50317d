package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HUAWEI_AI_API_KEY", "")
	t.Setenv("HUAWEI_AI_ENDPOINT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_DSN", "")
	t.Setenv("AI_PROVIDER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "feiyi.db", cfg.Database.DSN)
	assert.Equal(t, ProviderOpenAI, cfg.AI.Provider)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.False(t, cfg.AI.InsecureSkipVerify)
	assert.False(t, cfg.AI.Configured())
	assert.Equal(t, 0, cfg.Retention.InteractionDays)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "mysql")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("timeout", func(t *testing.T) {
		t.Setenv("AI_TIMEOUT_SECONDS", "soon")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("retention", func(t *testing.T) {
		t.Setenv("INTERACTION_RETENTION_DAYS", "-1")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestAIConfigConfigured(t *testing.T) {
	cases := []struct {
		name string
		cfg  AIConfig
		want bool
	}{
		{"openai complete", AIConfig{Provider: ProviderOpenAI, APIKey: "k", Endpoint: "https://x"}, true},
		{"openai missing endpoint", AIConfig{Provider: ProviderOpenAI, APIKey: "k"}, false},
		{"openai missing key", AIConfig{Provider: ProviderOpenAI, Endpoint: "https://x"}, false},
		{"gigachat", AIConfig{Provider: ProviderGigaChat, GigaChatAPIKey: "k"}, true},
		{"gigachat ignores openai fields", AIConfig{Provider: ProviderGigaChat, APIKey: "k", Endpoint: "https://x"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.cfg.Configured())
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "feiyi", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=feiyi sslmode=disable", c.PostgresDSN())

	c.DSN = "postgres://u:p@db/feiyi"
	assert.Equal(t, "postgres://u:p@db/feiyi", c.PostgresDSN())
}
