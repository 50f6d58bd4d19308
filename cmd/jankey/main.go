package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kobzarvs/jankey/internal/app"
)

func main() {
	var opts app.Options
	flag.BoolVar(&opts.Debug, "debug", false, "write debug-level logs")
	flag.IntVar(&opts.Words, "words", 0, "words per round (overrides config)")
	flag.StringVar(&opts.Dict, "dict", "", "dictionary file, one word per line (overrides config)")
	flag.Parse()

	if err := app.New(opts).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "jankey:", err)
		os.Exit(1)
	}
}
