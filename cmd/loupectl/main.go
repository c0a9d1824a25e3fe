// Package main содержит точку входа loupectl.
package main

import (
	"fmt"
	"os"

	"github.com/Kargones/loupe-ci/internal/loupectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}
