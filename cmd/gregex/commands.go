package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"gregex"
	"gregex/internal/glushkov"
	"gregex/internal/suite"
)

type matchCommand struct {
	Pattern string `short:"e" long:"pattern" description:"pattern to compile" required:"true"`
	Args    struct {
		Inputs []string `positional-arg-name:"INPUT"`
	} `positional-args:"yes"`
}

func (c *matchCommand) Execute(_ []string) error {
	re, err := gregex.Parse(c.Pattern)
	if err != nil {
		return err
	}
	failed := 0
	for _, in := range c.Args.Inputs {
		ok := re.Match(in)
		if !ok {
			failed++
		}
		fmt.Fprintf(stdout, "%s\t%v\n", in, ok)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs did not match %q", failed, len(c.Args.Inputs), c.Pattern)
	}
	return nil
}

type dotCommand struct {
	Pattern string `short:"e" long:"pattern" description:"pattern to compile" required:"true"`
	DFA     bool   `long:"dfa" description:"export the subset construction instead of the NFA"`
	Min     bool   `long:"min" description:"minimize the DFA, implies --dfa"`
	Output  string `short:"o" long:"output" description:"output file, - for stdout" default:"-"`
}

func (c *dotCommand) Execute(_ []string) error {
	re, err := gregex.Parse(c.Pattern)
	if err != nil {
		return err
	}

	var graph any = re.Automaton()
	switch {
	case c.Min:
		graph = re.Automaton().Determinize().Minimize()
	case c.DFA:
		graph = re.Automaton().Determinize()
	}

	var w io.Writer = stdout
	if c.Output != "-" {
		f, err := os.Create(c.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := glushkov.ExportDOT(w, graph); err != nil {
		return err
	}
	if c.Output != "-" {
		slog.Info("DOT written", "file", c.Output, "hint", "dot -Tpng "+c.Output+" -o graph.png")
	}
	return nil
}

type checkCommand struct {
	Workers int `short:"j" long:"jobs" description:"concurrent cases, 0 for GOMAXPROCS" default:"0"`
	Args    struct {
		File string `positional-arg-name:"FILE" required:"yes"`
	} `positional-args:"yes"`
}

var errSuiteFailed = errors.New("suite failed")

func (c *checkCommand) Execute(_ []string) error {
	s, err := suite.Load(c.Args.File)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := suite.Run(ctx, s, c.Workers)
	if err != nil {
		return err
	}
	for _, f := range res.Failures {
		fmt.Fprintln(stdout, f)
	}
	fmt.Fprintf(stdout, "%d cases, %d checks, %d failures\n", len(s.Cases), res.Checks, len(res.Failures))
	if !res.OK() {
		return errSuiteFailed
	}
	return nil
}
