package main

import (
	"fmt"
	"os"

	"applydi-client/internal/config"
	"applydi-client/internal/pkg/clientutils"
)

func main() {
	cfg := config.Load()
	c := newCLI(cfg, os.Stdin, os.Stdout, os.Stderr)

	err := newRootCmd(c).Execute()
	_ = c.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "applydi:", clientutils.UserMessage(err))
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch clientutils.KindOf(err) {
	case clientutils.KindUnauthorized:
		return 3
	case clientutils.KindValidation, clientutils.KindPrecondition:
		return 2
	case clientutils.KindCancelled:
		return 130
	}
	return 1
}
