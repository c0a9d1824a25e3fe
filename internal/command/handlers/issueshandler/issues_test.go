package issueshandler

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/loupe-ci/internal/adapter/loupe"
	"github.com/Kargones/loupe-ci/internal/adapter/loupe/loupetest"
	"github.com/Kargones/loupe-ci/internal/command"
	"github.com/Kargones/loupe-ci/internal/command/handlers/shared"
	"github.com/Kargones/loupe-ci/internal/config"
	"github.com/Kargones/loupe-ci/internal/constants"
	"github.com/Kargones/loupe-ci/internal/pkg/apperrors"
	"github.com/Kargones/loupe-ci/internal/pkg/logging"
	"github.com/Kargones/loupe-ci/internal/pkg/output"
	"github.com/Kargones/loupe-ci/internal/pkg/testutil"
)

func testConfig(version string) *config.Config {
	return &config.Config{
		Credentials: config.LoupeCredentials{Tenant: "Acme", UserName: "ci", Password: "secret"},
		Params:      config.OperationParams{Product: "Loupe", Application: "Server", Version: version},
	}
}

func execute(t *testing.T, h *Handler, cfg *config.Config, format string) (string, error) {
	t.Helper()
	t.Setenv(constants.EnvOutputFormat, format)
	var execErr error
	out := testutil.CaptureStdout(t, func() {
		execErr = h.Execute(context.Background(), cfg)
	})
	return out, execErr
}

func TestHandler_Name(t *testing.T) {
	h := &Handler{}
	assert.Equal(t, "enumerate-issues", h.Name())
	assert.NotEmpty(t, h.Description())
}

func TestHandler_JSON(t *testing.T) {
	var gotSpec, gotTenant string
	mock := &loupetest.MockClient{
		GetIssuesFunc: func(_ context.Context, tenant, versionSpec, _, _ string) ([]loupe.Issue, error) {
			gotTenant, gotSpec = tenant, versionSpec
			return loupetest.IssueData(), nil
		},
	}
	h := &Handler{deps: shared.Deps{Logger: logging.NewNopLogger()}, client: mock}

	out, err := execute(t, h, testConfig("4.*"), output.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "4.*", gotSpec)
	assert.Equal(t, "Acme", gotTenant)

	var res struct {
		Status   string `json:"status"`
		Data     Data   `json:"data"`
		Metadata struct {
			Summary output.SummaryInfo `json:"summary"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res), out)

	assert.Equal(t, output.StatusSuccess, res.Status)
	require.Len(t, res.Data.Issues, 2)
	assert.Equal(t, "issue-1", res.Data.Issues[0].ID)
	assert.Equal(t, "Jane Doe", res.Data.Issues[0].Submitter)
	assert.Equal(t, loupetest.MockBaseURL+"/Customers/Acme/Issues/1", res.Data.Issues[0].URL)
	assert.False(t, res.Data.Issues[0].Closed)
	assert.True(t, res.Data.Issues[1].Closed)

	require.Len(t, res.Metadata.Summary.KeyMetrics, 2)
	assert.Equal(t, "1", res.Metadata.Summary.KeyMetrics[0].Value)
	assert.Equal(t, "1", res.Metadata.Summary.KeyMetrics[1].Value)
}

func TestHandler_Text(t *testing.T) {
	mock := &loupetest.MockClient{
		GetIssuesFunc: func(context.Context, string, string, string, string) ([]loupe.Issue, error) {
			return loupetest.IssueData(), nil
		},
	}
	h := &Handler{deps: shared.Deps{Logger: logging.NewNopLogger()}, client: mock}

	out, err := execute(t, h, testConfig("4.5.0"), output.FormatText)
	require.NoError(t, err)
	assert.Contains(t, out, "enumerate-issues: success")
	assert.Contains(t, out, "NullReferenceException in Startup")
	assert.Contains(t, out, "Закрытых проблем: 1")
}

func TestHandler_Errors(t *testing.T) {
	t.Run("нет версии", func(t *testing.T) {
		h := &Handler{client: loupetest.NewMockClient()}
		_, err := execute(t, h, testConfig(""), output.FormatJSON)
		assert.Equal(t, apperrors.ErrCommandParams, apperrors.Code(err, ""))
	})

	t.Run("ошибка авторизации", func(t *testing.T) {
		mock := &loupetest.MockClient{
			GetIssuesFunc: func(context.Context, string, string, string, string) ([]loupe.Issue, error) {
				return nil, loupe.NewLoupeErrorWithStatus(loupe.ErrLoupeAuth, "Verify that the credentials used to connect are correct.", 401, "", nil)
			},
		}
		h := &Handler{client: mock}
		out, err := execute(t, h, testConfig("4.5.0"), output.FormatJSON)
		require.Error(t, err)
		assert.True(t, loupe.IsAuthError(err))
		assert.Contains(t, out, "The server returned an error (401)")
	})
}

func TestData_WriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&Data{Version: "9.9"}).WriteText(&buf))
	assert.Equal(t, "Проблем для версии 9.9 не найдено\n", buf.String())

	buf.Reset()
	d := &Data{Issues: []loupe.IssueRecord{{ID: "1", Status: "Active", Title: "multi\nline"}}}
	require.NoError(t, d.WriteText(&buf))
	assert.Contains(t, buf.String(), "multi line")
	assert.Contains(t, buf.String(), "SUBMITTER")
}

func TestRegisterCmd(t *testing.T) {
	require.NoError(t, RegisterCmd(shared.Deps{}))
	_, ok := command.Get(constants.ActEnumerateIssues)
	assert.True(t, ok)
	_, ok = command.Get(constants.ActIssueSource)
	assert.True(t, ok)
}
