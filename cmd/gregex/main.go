package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"

	"gregex/internal/logger"
)

type globalOptions struct {
	Verbose bool `short:"v" long:"verbose" description:"debug logging"`
}

var stdout io.Writer = os.Stdout

func newParser() *flags.Parser {
	var opts globalOptions
	p := flags.NewParser(&opts, flags.Default)
	p.Name = "gregex"
	p.CommandHandler = func(cmd flags.Commander, args []string) error {
		if opts.Verbose {
			logger.SetByName("debug")
		}
		if cmd == nil {
			return nil
		}
		return cmd.Execute(args)
	}

	p.AddCommand("match", "Match inputs against a pattern",
		"Prints each input with true or false and fails if any input does not match.", &matchCommand{})
	p.AddCommand("dot", "Export the automaton as Graphviz DOT",
		"Writes the Glushkov NFA, or its subset construction with --dfa.", &dotCommand{})
	p.AddCommand("check", "Run a YAML suite of test cases",
		"Evaluates every case concurrently and reports failures.", &checkCommand{})
	return p
}

func main() {
	logger.Init()

	if _, err := newParser().Parse(); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		slog.Debug("command failed", "err", err)
		os.Exit(1)
	}
}
