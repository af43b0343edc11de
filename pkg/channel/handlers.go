// SPDX-License-Identifier: Apache-2.0

package channel

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/hashgraph/puf-provisioner/pkg/module"
	"github.com/joomcode/errorx"
	"github.com/rs/zerolog"
)

// NoAnswer is returned by AnswersQueryHandler for keys it has no answer for.
var NoAnswer = ErrNamespace.NewType("no_answer", errorx.NotFound())

// LogStatusHandler forwards report lines to logger. The zerolog level follows the level prefix of the line.
func LogStatusHandler(logger *zerolog.Logger) StatusHandler {
	return func(line string) {
		var ev *zerolog.Event
		switch {
		case strings.HasPrefix(line, LevelInfo.String()+" "):
			ev = logger.Info()
		case strings.HasPrefix(line, LevelWarn.String()+" "):
			ev = logger.Warn()
		default:
			ev = logger.Error()
		}
		ev.Msg(line)
	}
}

// WriterStatusHandler writes every report line to w.
func WriterStatusHandler(w io.Writer) StatusHandler {
	var mu sync.Mutex
	return func(line string) {
		mu.Lock()
		defer mu.Unlock()
		_, _ = fmt.Fprintln(w, line)
	}
}

// AnswersQueryHandler answers queries from a fixed key to answer table, typically loaded from configuration for
// unattended provisioning. Answers are NUL terminated when there is room and truncated to the buffer otherwise.
func AnswersQueryHandler(answers map[string]string) QueryHandler {
	table := make(map[string]string, len(answers))
	for k, v := range answers {
		table[k] = v
	}

	return func(m module.Info, key string, prompt string, buf []byte) (int, error) {
		answer, ok := table[key]
		if !ok {
			return 0, NoAnswer.New("no configured answer for query %q of module %q", key, m.Name)
		}

		return terminate(buf, answer), nil
	}
}

// Console asks the operator through an interactive line editor.
type Console struct {
	rl *readline.Instance
	mu sync.Mutex
}

// ConsoleConfig selects the streams used by the console. Nil streams fall back to the process terminal.
type ConsoleConfig struct {
	Stdin  io.ReadCloser
	Stdout io.Writer
}

// NewConsole opens the line editor. Close must be called when the driver is done.
func NewConsole(cfg ConsoleConfig) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 "> ",
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		Stdin:                  cfg.Stdin,
		Stdout:                 cfg.Stdout,
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return nil, errorx.IllegalState.Wrap(err, "failed to create line editor")
	}

	return &Console{rl: rl}, nil
}

// Query implements QueryHandler.
func (c *Console) Query(m module.Info, key string, prompt string, buf []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rl.SetPrompt(fmt.Sprintf("%s (%s): %s", LevelInfo, m.Name, prompt))
	line, err := c.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt {
			return 0, QueryFailed.New("query %q interrupted by operator", key)
		}
		return 0, QueryFailed.Wrap(err, "failed to read answer to query %q", key)
	}

	return terminate(buf, strings.TrimRight(line, "\r\n")), nil
}

// Close releases the terminal.
func (c *Console) Close() error {
	return c.rl.Close()
}

// terminate copies answer into buf, leaving room for a trailing NUL when possible, and returns the answer length.
func terminate(buf []byte, answer string) int {
	if len(buf) == 0 {
		return 0
	}

	n := copy(buf[:len(buf)-1], answer)
	buf[n] = 0
	return n
}
