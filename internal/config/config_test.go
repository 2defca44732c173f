package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:                      "development",
		DBSSLMode:                "disable",
		SessionSecret:            "secure-secret-at-least-32-chars-long",
		DBPassword:               "secure-password",
		Port:                     "8080",
		UploadMaxMB:              10,
		DBConnMaxLifetimeMinutes: 1,
		MailDriver:               "log",
		RedisURL:                 "redis://localhost:6379",
	}
}

func TestConfig_ValidateSSLMode(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		sslMode     string
		expectError bool
	}{
		{"Production with empty SSL mode", "production", "", true},
		{"Production with disable SSL mode", "production", "disable", true},
		{"Production with require SSL mode", "production", "require", false},
		{"Prod with empty SSL mode", "prod", "", true},
		{"Prod with verify-full SSL mode", "prod", "verify-full", false},
		{"Development with disable SSL mode", "development", "disable", false},
		{"Test with empty SSL mode", "test", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.Env = tt.env
			c.DBSSLMode = tt.sslMode

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateProductionSecrets(t *testing.T) {
	t.Run("default secret rejected", func(t *testing.T) {
		c := validConfig()
		c.Env = "production"
		c.DBSSLMode = "require"
		c.SessionSecret = defaultSessionSecret
		assert.Error(t, c.Validate())
	})

	t.Run("smtp without credentials rejected", func(t *testing.T) {
		c := validConfig()
		c.Env = "production"
		c.DBSSLMode = "require"
		c.MailDriver = "smtp"
		assert.Error(t, c.Validate())

		c.SMTPUsername = "mailer"
		c.SMTPPassword = "app-password"
		assert.NoError(t, c.Validate())
	})

	t.Run("unknown mail driver rejected", func(t *testing.T) {
		c := validConfig()
		c.MailDriver = "pigeon"
		assert.Error(t, c.Validate())
	})

	t.Run("upload limit must be positive", func(t *testing.T) {
		c := validConfig()
		c.UploadMaxMB = 0
		assert.Error(t, c.Validate())
	})
}

func TestLoadConfig_Normalization(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("DB_SSLMODE")
	defer os.Unsetenv("PUBLIC_BASE_URL")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")
	os.Setenv("DB_SSLMODE", "  DISABLE  ")
	os.Setenv("PUBLIC_BASE_URL", "https://jobs.example.edu/")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, "https://jobs.example.edu", c.PublicBaseURL)
	assert.Equal(t, 24*7, c.SessionTTLHours)
	assert.Equal(t, "uploads", c.UploadDir)
}

func TestDefaultFeatureFlags(t *testing.T) {
	assert.NotContains(t, defaultFeatureFlags("development"), "strict_captcha")
	assert.NotContains(t, defaultFeatureFlags("test"), "strict_captcha")
	assert.Contains(t, defaultFeatureFlags("production"), "strict_captcha=on")
	assert.Contains(t, defaultFeatureFlags("staging"), "strict_captcha=on")
}

func TestLoadConfig_LocalProfileKeepsLenientCaptcha(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")
	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "photo_thumbnails=on,summary_cache=on", c.FeatureFlags)
	assert.False(t, c.RateLimitEnabled)
}
