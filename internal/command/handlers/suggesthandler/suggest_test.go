package suggesthandler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/loupe-ci/internal/adapter/loupe"
	"github.com/Kargones/loupe-ci/internal/adapter/loupe/loupetest"
	"github.com/Kargones/loupe-ci/internal/command/handlers/shared"
	"github.com/Kargones/loupe-ci/internal/config"
	"github.com/Kargones/loupe-ci/internal/constants"
	"github.com/Kargones/loupe-ci/internal/pkg/apperrors"
	"github.com/Kargones/loupe-ci/internal/pkg/logging"
	"github.com/Kargones/loupe-ci/internal/pkg/output"
	"github.com/Kargones/loupe-ci/internal/pkg/testutil"
)

func run(t *testing.T, h *Handler, cfg *config.Config, format string) (string, error) {
	t.Helper()
	t.Setenv(constants.EnvOutputFormat, format)
	var execErr error
	out := testutil.CaptureStdout(t, func() {
		execErr = h.Execute(context.Background(), cfg)
	})
	return out, execErr
}

func cfgFor(kind string) *config.Config {
	return &config.Config{
		Credentials: config.LoupeCredentials{Tenant: "Acme", UserName: "ci", Password: "secret"},
		Params:      config.OperationParams{SuggestKind: kind, Product: "Loupe"},
	}
}

func TestHandler_Applications(t *testing.T) {
	h := &Handler{deps: shared.Deps{Logger: logging.NewNopLogger()}, source: loupetest.NewMockClient()}

	out, err := run(t, h, cfgFor(constants.SuggestApplications), output.FormatJSON)
	require.NoError(t, err)

	var res struct {
		Data Data `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res), out)
	assert.Equal(t, constants.SuggestApplications, res.Data.Kind)
	assert.Equal(t, []string{"Agent", "Server"}, res.Data.Values)
}

func TestHandler_TextOutput(t *testing.T) {
	h := &Handler{source: loupetest.NewMockClient()}

	out, err := run(t, h, cfgFor(constants.SuggestTenants), output.FormatText)
	require.NoError(t, err)
	assert.Contains(t, out, "suggest: success\nAcme\n")
}

func TestHandler_UnknownKind(t *testing.T) {
	h := &Handler{source: loupetest.NewMockClient()}

	_, err := run(t, h, cfgFor("versions"), output.FormatJSON)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCommandParams, apperrors.Code(err, ""))
}

func TestHandler_NoCredentials(t *testing.T) {
	h := &Handler{deps: shared.Deps{
		NewClient: func(*config.Config) (loupe.Client, error) {
			t.Fatal("без учётных данных клиент не создаётся")
			return nil, nil
		},
	}}

	cfg := cfgFor(constants.SuggestProducts)
	cfg.Credentials = config.LoupeCredentials{}

	out, err := run(t, h, cfg, output.FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, out, `"values": []`)
}

func TestHandler_APIError(t *testing.T) {
	mock := &loupetest.MockClient{
		GetTenantsFunc: func(context.Context) (*loupe.TenantsForUserResponse, error) {
			return nil, loupe.NewLoupeErrorWithStatus(loupe.ErrLoupeAuth, "denied", 401, "", nil)
		},
	}
	h := &Handler{source: mock}

	_, err := run(t, h, cfgFor(constants.SuggestTenants), output.FormatJSON)
	require.Error(t, err)
	assert.Equal(t, loupe.ErrLoupeAuth, apperrors.Code(err, ""))
}
