package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/initializ/stepper/config"
	"github.com/initializ/stepper/types"
)

func withEndpointOverride(t *testing.T, endpoint string) {
	t.Helper()
	oldEndpoint, oldEnv := endpointOverride, envFile
	endpointOverride = endpoint
	envFile = ""
	t.Cleanup(func() { endpointOverride, envFile = oldEndpoint, oldEnv })
}

func TestLoadConfig_FlagOverridesBadEnvEndpoint(t *testing.T) {
	withCfgFile(t, writeTestStepperYAML(t, t.TempDir(), "theme: dark\n"))
	withEndpointOverride(t, "http://localhost:9/api/process")
	t.Setenv(config.EnvEndpoint, "not-a-url")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9/api/process", cfg.Endpoint)
}

func TestLoadConfig_FlagOverridesBadYAMLEndpoint(t *testing.T) {
	withCfgFile(t, writeTestStepperYAML(t, t.TempDir(), "endpoint: /relative\n"))
	withEndpointOverride(t, "http://localhost:9/api/process")
	t.Setenv(config.EnvEndpoint, "")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9/api/process", cfg.Endpoint)
}

func TestLoadConfig_BadEnvEndpointWithoutFlag(t *testing.T) {
	withCfgFile(t, writeTestStepperYAML(t, t.TempDir(), "theme: dark\n"))
	withEndpointOverride(t, "")
	t.Setenv(config.EnvEndpoint, "not-a-url")

	_, err := loadConfig()
	assert.ErrorIs(t, err, types.ErrInvalidConfig)
}
