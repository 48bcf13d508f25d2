// Package prompt asks the operator yes/no questions before files are
// converted or replaced.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Confirmer answers yes/no questions.
type Confirmer interface {
	Confirm(format string, args ...any) (bool, error)
}

// Console prompts on a terminal. On a TTY a single keystroke answers,
// otherwise one line is read per question. Only Y or y means yes.
type Console struct {
	out       io.Writer
	in        *bufio.Reader
	fd        int
	tty       bool
	assumeYes bool
	msg       *color.Color
}

// NewConsole returns a Console reading answers from in. With assumeYes
// every question is answered yes without reading.
func NewConsole(in io.Reader, out io.Writer, assumeYes bool) *Console {
	c := &Console{
		out:       out,
		in:        bufio.NewReader(in),
		fd:        -1,
		assumeYes: assumeYes,
		msg:       color.New(color.FgYellow, color.Bold),
	}
	if f, ok := in.(*os.File); ok {
		fd := f.Fd()
		if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
			c.fd = int(fd)
			c.tty = true
		}
	}
	return c
}

// Confirm prints the question and reads the answer.
func (c *Console) Confirm(format string, args ...any) (bool, error) {
	question := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(question, "\n") {
		question += "\n"
	}
	if _, err := c.msg.Fprint(c.out, question); err != nil {
		return false, fmt.Errorf("writing prompt: %w", err)
	}
	if c.assumeYes {
		fmt.Fprintln(c.out, "Y")
		return true, nil
	}

	key, err := c.readKey()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("reading answer: %w", err)
	}
	return key == 'Y' || key == 'y', nil
}

func (c *Console) readKey() (byte, error) {
	if c.tty {
		restore, err := rawMode(c.fd)
		if err == nil {
			defer restore()
			return c.in.ReadByte()
		}
	}

	line, err := c.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return 0, err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, nil
	}
	return line[0], nil
}

// Scripted replays fixed answers, then answers no.
type Scripted struct {
	Answers []bool
	Asked   []string
}

// Confirm records the question and pops the next answer.
func (s *Scripted) Confirm(format string, args ...any) (bool, error) {
	s.Asked = append(s.Asked, fmt.Sprintf(format, args...))
	if len(s.Answers) == 0 {
		return false, nil
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	return answer, nil
}

// Always answers every question the same way.
type Always bool

// Confirm returns the fixed answer.
func (a Always) Confirm(string, ...any) (bool, error) {
	return bool(a), nil
}
