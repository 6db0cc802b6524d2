package main

import (
	"fmt"
	"io"

	"github.com/zeebo/clingy"

	"loov.dev/locktrace/import/ltrace"
	"loov.dev/locktrace/stream"
	"loov.dev/locktrace/trace"
)

type cmdStats struct {
	input string
}

func (c *cmdStats) Setup(params clingy.Parameters) {
	c.input = params.Arg("input", "Call log to summarize, - for stdin").(string)
}

func (c *cmdStats) Execute(ctx clingy.Context) error {
	log := newLogger(ctx.Stderr(), false)
	return stats(c.input, ltrace.Options{Log: log}, ctx.Stdin(), ctx.Stdout())
}

func stats(input string, opts ltrace.Options, stdin io.Reader, stdout io.Writer) error {
	in, err := stream.Open(input, stdin)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	summary := trace.NewStats()
	err = ltrace.Walk(in, opts, func(call trace.Call) error {
		summary.Add(call)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", input, err)
	}
	return summary.Report(stdout)
}
