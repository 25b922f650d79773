// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package procrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/matt-FFFFFF/plasma/internal/ctxlog"
)

const (
	// MaxBufferSize caps the captured stdout and stderr of a process.
	MaxBufferSize = 8 * 1024 * 1024
	// KillGrace is how long a cancelled process has to exit before it is killed.
	KillGrace = 5 * time.Second
)

var (
	// ErrBufferOverflow is returned when the output exceeds MaxBufferSize.
	ErrBufferOverflow = fmt.Errorf("output exceeds max size of %d bytes", MaxBufferSize)
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrCancelled is returned when the context ended before the process did.
	ErrCancelled = errors.New("process cancelled")
)

// Command describes one program invocation.
type Command struct {
	Path   string            // Executable name or path, resolved with LookPath.
	Args   []string          // Arguments, excluding the executable itself.
	Dir    string            // Working directory, empty for the current one.
	Env    map[string]string // Merged over the process environment.
	Stdin  io.Reader         // Nil means no input.
	Stdout io.Writer         // When set, stdout is streamed here as well as captured.
	Stderr io.Writer         // When set, stderr is streamed here as well as captured.
}

// String renders the command line for logs and messages.
func (c Command) String() string {
	return strings.TrimSpace(c.Path + " " + strings.Join(c.Args, " "))
}

// Result is the outcome of running a Command.
// A process that ran and exited non-zero has Err == nil and ExitCode set.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
	Err      error
}

// OK reports whether the process ran and exited zero.
func (r Result) OK() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Output returns stdout with surrounding whitespace removed.
func (r Result) Output() string {
	return strings.TrimSpace(string(r.Stdout))
}

// ErrorOutput returns stderr with surrounding whitespace removed.
func (r Result) ErrorOutput() string {
	return strings.TrimSpace(string(r.Stderr))
}

// Runner executes commands.
type Runner interface {
	Run(ctx context.Context, c Command) Result
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, c Command) Result

// Run implements Runner.
func (f RunnerFunc) Run(ctx context.Context, c Command) Result {
	return f(ctx, c)
}

// OS runs commands as real child processes.
type OS struct{}

var _ Runner = OS{}

// Run implements Runner.
func (OS) Run(ctx context.Context, c Command) Result {
	logger := ctxlog.Logger(ctx).With("runner", "procrun", "command", c.String())

	path, err := LookPath(c.Path)
	if err != nil {
		return Result{ExitCode: -1, Err: errors.Join(ErrCouldNotStartProcess, err)}
	}

	cmd := exec.CommandContext(ctx, path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	cmd.Env = os.Environ()

	for k, v := range c.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	// Ask politely first; WaitDelay escalates to SIGKILL.
	cmd.Cancel = func() error {
		logger.Info("context done, terminating process", "pid", cmd.Process.Pid)
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = KillGrace

	stdout := &cappedBuffer{max: MaxBufferSize}
	stderr := &cappedBuffer{max: MaxBufferSize}
	cmd.Stdout = tee(stdout, c.Stdout)
	cmd.Stderr = tee(stderr, c.Stderr)

	logger.Debug("starting process", "dir", c.Dir)

	if err := cmd.Start(); err != nil {
		return Result{ExitCode: -1, Err: errors.Join(ErrCouldNotStartProcess, err)}
	}

	err = cmd.Wait()

	res := Result{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
	}

	var exitErr *exec.ExitError

	switch {
	case ctx.Err() != nil:
		res.Err = errors.Join(ErrCancelled, ctx.Err())
	case errors.As(err, &exitErr):
		// A non-zero exit is reported through ExitCode.
	case err != nil:
		res.Err = err
	}

	if stdout.overflow || stderr.overflow {
		res.Err = errors.Join(res.Err, ErrBufferOverflow)
	}

	logger.Debug("process finished", "exitCode", res.ExitCode, "error", res.Err)

	return res
}

func tee(capture io.Writer, stream io.Writer) io.Writer {
	if stream == nil {
		return capture
	}

	return io.MultiWriter(stream, capture)
}

// cappedBuffer keeps the first max bytes written to it and discards the rest
// without failing the writer.
type cappedBuffer struct {
	bytes.Buffer
	max      int
	overflow bool
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	room := b.max - b.Len()
	if room < len(p) {
		b.overflow = true

		if room > 0 {
			b.Buffer.Write(p[:room])
		}

		return len(p), nil
	}

	return b.Buffer.Write(p)
}
