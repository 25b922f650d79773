// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"
)

// ErrAborted is returned when the user aborts a prompt with Ctrl+C.
var ErrAborted = errors.New("prompt aborted")

// readLine shows prompt and returns one line of input without the newline.
// End of input yields the empty string, which callers treat as the default.
func (c *Console) readLine(prompt string) (string, error) {
	if c.interactive {
		line := liner.NewLiner()
		defer func() {
			_ = line.Close()
		}()

		line.SetCtrlCAborts(true)

		input, err := line.Prompt(prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			return "", ErrAborted
		case errors.Is(err, io.EOF):
			return "", nil
		case err != nil:
			return "", fmt.Errorf("reading input: %w", err)
		}

		return strings.TrimSpace(input), nil
	}

	_, _ = io.WriteString(c.out, prompt)

	input, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading input: %w", err)
	}

	if errors.Is(err, io.EOF) {
		_, _ = io.WriteString(c.out, "\n")
	}

	return strings.TrimSpace(input), nil
}

// Confirm asks a yes/no question. Empty input selects def.
func (c *Console) Confirm(question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}

	for {
		answer, err := c.readLine(fmt.Sprintf("%s %s: ", question, hint))
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		if !c.interactive {
			return false, fmt.Errorf("%w: %q is not yes or no", ErrInvalidAnswer, answer)
		}

		c.Warning("Please answer yes or no")
	}
}

// ErrInvalidAnswer is returned by non-interactive prompts given unusable input.
var ErrInvalidAnswer = errors.New("invalid answer")

// Choose asks the user to pick one of options by number or by name and
// returns its index. Empty input selects def.
func (c *Console) Choose(question string, options []string, def int) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("%w: nothing to choose from", ErrInvalidAnswer)
	}

	if def < 0 || def >= len(options) {
		def = 0
	}

	for i, o := range options {
		_, _ = fmt.Fprintf(c.out, "  %d. %s\n", i+1, o)
	}

	for {
		answer, err := c.readLine(fmt.Sprintf("%s [%s]: ", question, options[def]))
		if err != nil {
			return 0, err
		}

		if idx, ok := pick(answer, options, def); ok {
			return idx, nil
		}

		if !c.interactive {
			return 0, fmt.Errorf("%w: %q is not one of %s", ErrInvalidAnswer, answer, strings.Join(options, ", "))
		}

		c.Warning("Please choose one of the listed options")
	}
}

func pick(answer string, options []string, def int) (int, bool) {
	if answer == "" {
		return def, true
	}

	if n, err := strconv.Atoi(answer); err == nil {
		return n - 1, n >= 1 && n <= len(options)
	}

	for i, o := range options {
		if strings.EqualFold(o, answer) {
			return i, true
		}
	}

	return 0, false
}

// Ask prompts for free text. Empty input selects def.
func (c *Console) Ask(question, def string) (string, error) {
	prompt := question + ": "
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]: ", question, def)
	}

	answer, err := c.readLine(prompt)
	if err != nil {
		return "", err
	}

	if answer == "" {
		return def, nil
	}

	return answer, nil
}
