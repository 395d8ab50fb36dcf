package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"go.uber.org/zap"
)

// RunInteractive reads lines from the terminal. The status line follows
// every keystroke and each submitted line gets a full report.
func (a *Application) RunInteractive(prompt string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Listener: readline.FuncListener(func(line []rune, pos int, key rune) ([]rune, int, bool) {
			a.HandleKeystroke(string(line))
			// Leave the line untouched
			return nil, 0, false
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to start readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read line: %w", err)
		}

		a.deps.Logger.Debug("line submitted", zap.String("input", line))
		a.SubmitLine(line)
	}
}
