package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/flatcompose/cmd/flatcompose"
	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/output"
)

func main() {
	rootCmd := flatcompose.NewRootCmd()
	cmd, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	_ = output.New(os.Stderr, output.FormatAuto).Error(err)

	// Flag and argument errors come from cobra without a code
	if errors.GetErrorCode(err) == errors.ErrUnknown {
		fmt.Fprintln(os.Stderr)
		_ = cmd.Usage()
	}
	os.Exit(1)
}
