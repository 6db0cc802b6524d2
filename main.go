package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/zeebo/clingy"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line args and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ok, err := clingy.Environment{
		Name:   "locktrace",
		Args:   args,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}.Run(context.Background(), func(cmds clingy.Commands) {
		cmds.New("convert", "Convert a pthread call log to Chrome trace events", new(cmdConvert))
		cmds.New("stats", "Summarize lock and wait durations of a pthread call log", new(cmdStats))
		cmds.New("inspect", "Summarize a Chrome trace event file", new(cmdInspect))
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
	}
	if !ok || err != nil {
		return 1
	}
	return 0
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.Out = w
	log.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	log.Level = logrus.InfoLevel
	if verbose {
		log.Level = logrus.DebugLevel
	}
	return log
}
