package main

import (
	"fmt"
	"log"
	"os"

	"github.com/htekdev/azure-ai-foundry-starter-sub001/cmd"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/output"
	"github.com/mattn/go-colorable"
)

// Exit codes: 0 on success (including runs where everything already
// existed), 1 when any resource failed or a precondition was not met, 2 when
// an unexpected panic was recovered.
const (
	exitFailure    = 1
	exitUnexpected = 2
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	restoreColorMode := colorable.EnableColorsStdout(nil)
	defer restoreColorMode()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("panic: %v", r)
			fmt.Fprintln(os.Stderr, output.WithErrorFormat("unexpected error: %v", r))
			code = exitUnexpected
		}
	}()

	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, output.WithErrorFormat("ERROR: %v", err))
		return exitFailure
	}

	return 0
}
