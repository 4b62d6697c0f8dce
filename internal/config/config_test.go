package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		expectError bool
	}{
		{
			name: "Valid development config",
			cfg: Config{
				Env:        "development",
				Port:       "8375",
				JWTSecret:  "dev-secret",
				DBPassword: "password",
			},
			expectError: false,
		},
		{
			name: "Missing port",
			cfg: Config{
				Env:       "development",
				JWTSecret: "dev-secret",
			},
			expectError: true,
		},
		{
			name: "Missing JWT secret",
			cfg: Config{
				Env:  "development",
				Port: "8375",
			},
			expectError: true,
		},
		{
			name: "Production with default JWT secret",
			cfg: Config{
				Env:        "production",
				Port:       "8375",
				JWTSecret:  "your-secret-key-change-in-production",
				DBPassword: "strong-password",
			},
			expectError: true,
		},
		{
			name: "Production with short JWT secret",
			cfg: Config{
				Env:        "production",
				Port:       "8375",
				JWTSecret:  "short",
				DBPassword: "strong-password",
			},
			expectError: true,
		},
		{
			name: "Production with default DB password",
			cfg: Config{
				Env:        "production",
				Port:       "8375",
				JWTSecret:  "secure-secret-at-least-32-chars-long",
				DBPassword: "password",
			},
			expectError: true,
		},
		{
			name: "Valid production config",
			cfg: Config{
				Env:        "production",
				Port:       "8375",
				JWTSecret:  "secure-secret-at-least-32-chars-long",
				DBPassword: "strong-password",
				DBSSLMode:  "require",
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("APP_ENV", "development")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "8375", c.Port)
	assert.Equal(t, "mingle", c.DBName)
	assert.Equal(t, "localhost:6379", c.RedisURL)
	assert.Equal(t, "disable", c.DBSSLMode)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("APP_ENV", "development")
	t.Setenv("PORT", "9000")
	t.Setenv("DB_NAME", "mingle_override")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, "mingle_override", c.DBName)
}
