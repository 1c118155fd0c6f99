// Package prompter reads answers from the terminal for interactive commands.
package prompter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks questions on Out and reads answers from In.
type Prompter struct {
	In  io.Reader
	Out io.Writer
	// Fd is the terminal descriptor used for hidden input, -1 if none.
	Fd int

	reader *bufio.Reader
}

// New returns a prompter over the given streams without hidden input.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{In: in, Out: out, Fd: -1}
}

// Stdio prompts on the process's terminal.
func Stdio() *Prompter {
	p := New(os.Stdin, os.Stdout)
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		p.Fd = fd
	}
	return p
}

func (p *Prompter) line() (string, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	input, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// String prompts for a line of input.
func (p *Prompter) String(label string) (string, error) {
	fmt.Fprint(p.Out, label)
	return p.line()
}

// Password prompts for input without echo when attached to a terminal.
func (p *Prompter) Password(label string) (string, error) {
	fmt.Fprint(p.Out, label)
	if p.Fd < 0 {
		return p.line()
	}

	pw, err := term.ReadPassword(p.Fd)
	fmt.Fprintln(p.Out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(label string) (bool, error) {
	fmt.Fprint(p.Out, label+" (y/n) ")
	input, err := p.line()
	if err != nil {
		return false, err
	}
	response := strings.ToLower(input)
	return response == "y" || response == "yes", nil
}

// Select lists options and returns the index of the chosen one.
func (p *Prompter) Select(label string, options []string) (int, error) {
	fmt.Fprintln(p.Out, label)
	for i, opt := range options {
		fmt.Fprintf(p.Out, "%d) %s\n", i+1, opt)
	}

	fmt.Fprint(p.Out, "Select option: ")
	input, err := p.line()
	if err != nil {
		return -1, err
	}

	var selection int
	if _, err := fmt.Sscanf(input, "%d", &selection); err != nil {
		return -1, fmt.Errorf("invalid selection %q", input)
	}
	if selection < 1 || selection > len(options) {
		return -1, fmt.Errorf("invalid selection")
	}
	return selection - 1, nil
}
