// SPDX-License-Identifier: Apache-2.0

// Package channel carries progress reports and operator queries between modules and the driver that embeds them.
// Modules never write to the console themselves; a driver decides where reports go and how questions are answered.
package channel

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hashgraph/puf-provisioner/pkg/module"
	"github.com/joomcode/errorx"
)

// FallbackLine is emitted instead of a report whose message cannot be rendered.
const FallbackLine = "error (puflib): internal error formatting message"

var (
	ErrNamespace = errorx.NewNamespace("channel")
	// NoHandler is returned by Query when the driver installed no query handler. It is a normal outcome for
	// non-interactive deployments and is never reported.
	NoHandler = ErrNamespace.NewType("no_handler", errorx.NotFound())
	// QueryFailed wraps an error returned by the query handler.
	QueryFailed = ErrNamespace.NewType("query_failed")
)

// Level is the severity of a report.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// String returns the level name. Unknown levels render as "error".
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	default:
		return "error"
	}
}

// StatusHandler receives one pre-formatted line per report.
type StatusHandler func(line string)

// QueryHandler asks the operator the question identified by key and writes the answer into buf. It returns the
// number of bytes written, which must not exceed len(buf).
type QueryHandler func(m module.Info, key string, prompt string, buf []byte) (int, error)

// Channel binds a status handler and an optional query handler. Handlers are fixed at construction, so a Channel
// is safe to share once built.
type Channel struct {
	status StatusHandler
	query  QueryHandler
}

// New returns a channel. The status handler is mandatory; a nil query handler disables interactive queries.
func New(status StatusHandler, query QueryHandler) (*Channel, error) {
	if status == nil {
		return nil, errorx.IllegalArgument.New("status handler cannot be nil")
	}

	return &Channel{status: status, query: query}, nil
}

// Interactive reports whether a query handler is installed.
func (c *Channel) Interactive() bool {
	return c.query != nil
}

// Report emits exactly one line "<level> (<module>): <message>". A message that is not valid UTF-8 or that
// contains a NUL byte, a line feed or a carriage return is replaced by FallbackLine.
func (c *Channel) Report(m module.Info, level Level, message string) {
	line, ok := formatLine(m, level, message)
	if !ok {
		c.status(FallbackLine)
		return
	}

	c.status(line)
}

// Reportf formats the message and reports it. A format string that does not match its arguments produces
// FallbackLine rather than a garbled report. Arguments may themselves contain "%!".
func (c *Channel) Reportf(m module.Info, level Level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	if badFormat(format, message, args) {
		c.status(FallbackLine)
		return
	}

	c.Report(m, level, message)
}

// Perror reports err at error level.
func (c *Channel) Perror(m module.Info, err error) {
	if err == nil {
		c.Report(m, LevelError, "unknown error")
		return
	}

	c.Report(m, LevelError, err.Error())
}

// Query forwards the question to the query handler. Without a handler it fails with NoHandler and leaves buf
// untouched. The returned count is clamped to len(buf).
func (c *Channel) Query(m module.Info, key string, prompt string, buf []byte) (int, error) {
	if c.query == nil {
		return 0, NoHandler.New("no query handler installed for %q", key)
	}

	n, err := c.query(m, key, prompt, buf)
	if err != nil {
		return 0, QueryFailed.Wrap(err, "query %q of module %q failed", key, m.Name)
	}

	if n < 0 {
		n = 0
	}
	if n > len(buf) {
		n = len(buf)
	}

	return n, nil
}

// QueryString is Query with a buffer of size bytes. The answer ends at the first NUL byte, if any.
func (c *Channel) QueryString(m module.Info, key string, prompt string, size int) (string, error) {
	if size <= 0 {
		return "", errorx.IllegalArgument.New("query buffer size must be positive")
	}

	buf := make([]byte, size)
	n, err := c.Query(m, key, prompt, buf)
	if err != nil {
		return "", err
	}

	answer := buf[:n]
	if i := bytes.IndexByte(answer, 0); i >= 0 {
		answer = answer[:i]
	}

	return string(answer), nil
}

func formatLine(m module.Info, level Level, message string) (string, bool) {
	if !utf8.ValidString(message) || strings.ContainsAny(message, "\x00\n\r") {
		return "", false
	}

	return fmt.Sprintf("%s (%s): %s", level, m.Name, message), true
}

// badFormat detects the %!verb(...) markers fmt inserts for mismatched verbs and arguments. Markers already present
// in the format or in the printed arguments are not counted.
func badFormat(format string, out string, args []interface{}) bool {
	expected := strings.Count(format, "%!")
	for _, arg := range args {
		expected += strings.Count(fmt.Sprint(arg), "%!")
	}

	return strings.Count(out, "%!") > expected
}
