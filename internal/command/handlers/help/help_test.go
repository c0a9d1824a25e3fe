package help

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/loupe-ci/internal/command"
	"github.com/Kargones/loupe-ci/internal/config"
	"github.com/Kargones/loupe-ci/internal/constants"
	"github.com/Kargones/loupe-ci/internal/pkg/output"
	"github.com/Kargones/loupe-ci/internal/pkg/testutil"
)

type stubHandler struct{ name string }

func (s *stubHandler) Name() string                                 { return s.name }
func (s *stubHandler) Description() string                          { return "заглушка " + s.name }
func (s *stubHandler) Execute(context.Context, *config.Config) error { return nil }

func TestMain(m *testing.M) {
	if err := RegisterCmd(); err != nil {
		panic(err)
	}
	if err := command.RegisterWithAlias(&stubHandler{name: "ensure-version"}, "ensure-application-version"); err != nil {
		panic(err)
	}
	m.Run()
}

func TestHandler_Name(t *testing.T) {
	h := &Handler{}
	assert.Equal(t, constants.ActHelp, h.Name())
	assert.Equal(t, "Вывод списка доступных команд", h.Description())
}

func TestHandler_TextOutput(t *testing.T) {
	t.Setenv(constants.EnvOutputFormat, "text")

	var execErr error
	out := testutil.CaptureStdout(t, func() {
		execErr = (&Handler{}).Execute(context.Background(), nil)
	})
	require.NoError(t, execErr)

	assert.Contains(t, out, "loupe-ci — интеграция CI с Loupe")
	assert.Contains(t, out, "Вывод списка доступных команд")
	assert.Contains(t, out, "[deprecated → ensure-version] заглушка ensure-version")
	assert.Contains(t, out, "LOUPE_OUTPUT_FORMAT")
	assert.NotContains(t, out, "trace_id")
}

func TestHandler_JSONOutput(t *testing.T) {
	t.Setenv(constants.EnvOutputFormat, output.FormatJSON)

	var execErr error
	out := testutil.CaptureStdout(t, func() {
		execErr = (&Handler{}).Execute(context.Background(), nil)
	})
	require.NoError(t, execErr)

	var res struct {
		Status   string          `json:"status"`
		Data     Data            `json:"data"`
		Metadata output.Metadata `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, output.StatusSuccess, res.Status)
	assert.NotEmpty(t, res.Metadata.TraceID)

	names := make([]string, 0, len(res.Data.Commands))
	for _, c := range res.Data.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"ensure-application-version", "ensure-version", "help"}, names)
	assert.True(t, res.Data.Commands[0].Deprecated)
	assert.Equal(t, "ensure-version", res.Data.Commands[0].NewName)
}

func TestData_WriteText_Alignment(t *testing.T) {
	d := &Data{Commands: []CommandInfo{{Name: "a", Description: "x"}, {Name: "long-name", Description: "y"}}}
	var buf bytes.Buffer
	require.NoError(t, d.writeText(&buf))
	assert.Contains(t, buf.String(), "  a          x\n")
}
