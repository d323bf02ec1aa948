// Command vocab looks up English words: definitions, frequency, etymology,
// synonyms and antonyms, merged from an offline lexicon index and online
// dictionaries.
//
// With no words on the command line, in a file or on piped stdin it starts
// an interactive shell.
//
// Exit codes: 0 = success, 1 = error or at least one invalid input.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd(&streams{in: stdin, out: stdout, errOut: stderr})
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errInputErrors) {
			fmt.Fprintf(stderr, "vocab: %v\n", err)
		}
		return 1
	}
	return 0
}
