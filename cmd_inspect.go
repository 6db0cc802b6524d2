package main

import (
	"fmt"
	"io"

	"github.com/zeebo/clingy"

	"loov.dev/locktrace/import/tef"
	"loov.dev/locktrace/stream"
)

type cmdInspect struct {
	input string
}

func (c *cmdInspect) Setup(params clingy.Parameters) {
	c.input = params.Arg("trace", "Trace event file, - for stdin").(string)
}

func (c *cmdInspect) Execute(ctx clingy.Context) error {
	return inspect(c.input, ctx.Stdin(), ctx.Stdout())
}

func inspect(input string, stdin io.Reader, stdout io.Writer) error {
	in, err := stream.Open(input, stdin)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read file %q: %w", input, err)
	}
	summary, err := tef.Inspect(data)
	if err != nil {
		return fmt.Errorf("failed to inspect %q: %w", input, err)
	}
	return summary.Report(stdout)
}
