package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/zeebo/clingy"
	"github.com/zeebo/errs/v2"

	"loov.dev/locktrace/import/ltrace"
	"loov.dev/locktrace/stream"
)

type cmdConvert struct {
	verbose bool
	output  string
	pid     int64
	input   string
}

func (c *cmdConvert) Setup(params clingy.Parameters) {
	c.verbose = params.Flag("verbose", "Echo processed lines and call annotations", false,
		clingy.Short('v'),
		clingy.Transform(strconv.ParseBool), clingy.Boolean,
	).(bool)
	c.output = params.Flag("output", "Output file, - for stdout (.gz and .zst are compressed)", stream.Stdio,
		clingy.Short('o'),
	).(string)
	c.pid = params.Flag("pid", "Process id stamped on every event", int64(ltrace.DefaultPID),
		clingy.Transform(parsePID),
	).(int64)
	c.input = params.Arg("input", "Call log to convert, - for stdin").(string)
}

func (c *cmdConvert) Execute(ctx clingy.Context) error {
	log := newLogger(ctx.Stderr(), c.verbose)
	return convert(c.input, c.output, ltrace.Options{PID: c.pid, Log: log}, ctx.Stdin(), ctx.Stdout())
}

// convert reads the whole input before creating the output, so a failing
// conversion never leaves partial JSON behind.
func convert(input, output string, opts ltrace.Options, stdin io.Reader, stdout io.Writer) (err error) {
	in, err := stream.Open(input, stdin)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	events, err := ltrace.Convert(in, opts)
	if err != nil {
		return fmt.Errorf("failed to convert %q: %w", input, err)
	}

	out, err := stream.Create(output, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to write %q: %w", output, closeErr)
		}
	}()

	if _, err := events.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write %q: %w", output, err)
	}
	if opts.Log != nil {
		opts.Log.WithField("events", events.Len()).Debug("done")
	}
	return nil
}

func parsePID(s string) (int64, error) {
	pid, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if pid <= 0 {
		return 0, errs.Errorf("pid must be positive, got %d", pid)
	}
	return pid, nil
}
