package testutil

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaptureStdout(t *testing.T) {
	saved := os.Stdout

	out := CaptureStdout(t, func() {
		fmt.Println("ensure-version: success")
	})

	assert.Equal(t, "ensure-version: success\n", out)
	assert.Same(t, saved, os.Stdout, "stdout восстановлен")
}

func TestCaptureStdout_LargeOutput(t *testing.T) {
	line := strings.Repeat("x", 1023) + "\n"
	out := CaptureStdout(t, func() {
		for range 200 {
			fmt.Print(line)
		}
	})
	assert.Len(t, out, 200*len(line))
}
