package shared

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/loupe-ci/internal/adapter/loupe"
	"github.com/Kargones/loupe-ci/internal/config"
	"github.com/Kargones/loupe-ci/internal/pkg/apperrors"
)

func TestCreateLoupeClient(t *testing.T) {
	t.Run("nil конфигурация", func(t *testing.T) {
		client, err := CreateLoupeClient(nil)
		require.Error(t, err)
		assert.Nil(t, client)
		assert.Equal(t, apperrors.ErrConfigMissing, apperrors.Code(err, ""))
	})

	t.Run("нет учётных данных", func(t *testing.T) {
		client, err := CreateLoupeClient(&config.Config{HTTPTimeout: time.Second})
		require.Error(t, err)
		assert.Nil(t, client)
		assert.True(t, IsConfigError(err))
		assert.Contains(t, err.Error(), "LOUPE_USERNAME")
	})

	t.Run("адрес по умолчанию", func(t *testing.T) {
		cfg := &config.Config{
			Credentials: config.LoupeCredentials{UserName: "ci", Password: "p"},
			HTTPTimeout: time.Second,
		}
		client, err := CreateLoupeClient(cfg)
		require.NoError(t, err)
		assert.Equal(t, loupe.DefaultBaseURL, client.BaseURL())
	})

	t.Run("переопределение подключения", func(t *testing.T) {
		cfg := &config.Config{
			Credentials: config.LoupeCredentials{BaseURL: "https://a.example.com", UserName: "ci", Password: "p"},
			Connection:  config.ConnectionOverride{BaseURL: "https://b.example.com/"},
			HTTPTimeout: time.Second,
		}
		client, err := CreateLoupeClient(cfg)
		require.NoError(t, err)
		assert.Equal(t, "https://b.example.com", client.BaseURL())
	})
}

func TestIsConfigError(t *testing.T) {
	assert.False(t, IsConfigError(nil))
	assert.False(t, IsConfigError(errors.New("boom")))
	assert.False(t, IsConfigError(loupe.NewLoupeError(loupe.ErrLoupeAPI, "boom", nil)))
	assert.True(t, IsConfigError(apperrors.NewAppError(apperrors.ErrConfigMissing, "x", nil)))
}

func TestDeps_WithDefaults(t *testing.T) {
	deps := Deps{}.WithDefaults()
	require.NotNil(t, deps.NewClient)
	require.NotNil(t, deps.Logger)

	_, err := deps.NewClient(&config.Config{})
	assert.True(t, IsConfigError(err))
}
