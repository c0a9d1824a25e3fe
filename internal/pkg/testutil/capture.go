// Package testutil содержит помощники тестов loupe-ci.
package testutil

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// CaptureStdout перенаправляет os.Stdout на время fn и возвращает всё,
// что туда записали. Нужен для команд, которые пишут Result прямо в stdout.
func CaptureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err, "pipe для stdout")

	saved := os.Stdout
	os.Stdout = w
	restore := func() { os.Stdout = saved }
	t.Cleanup(restore)

	done := make(chan []byte, 1)
	go func() {
		data, _ := io.ReadAll(r) //nolint:errcheck // pipe закрывается ниже
		done <- data
	}()

	fn()

	restore()
	require.NoError(t, w.Close())
	return string(<-done)
}
