// regx searches text with backtracking regular expressions and explains how
// a pattern is compiled.
//
//	regx grep -n 'colou?r' notes.txt
//	regx match '(\w+)@(\w+)' bob@example
//	regx explain -X '\i\c*'
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/coregx/regx/cmd/regx/command"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := command.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
