// Command specdiff compares two versions of an OpenAPI document and reports
// added, deleted, and changed operations with breaking-change flags.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/specdiff/cmd/specdiff/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.Execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
