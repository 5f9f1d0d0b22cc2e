package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/AvengeMedia/dankimage/internal/actions"
)

type stdinPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newStdinPrompter(in io.Reader, out io.Writer) *stdinPrompter {
	return &stdinPrompter{in: bufio.NewReader(in), out: out}
}

// Confirm reads a y/N answer; "c" cancels when allowed. Anything else,
// including an unreadable stdin, is No or Cancel.
func (p *stdinPrompter) Confirm(message string, allowCancel bool) actions.Answer {
	choices := "(y/N)"
	if allowCancel {
		choices = "(y/N/c)"
	}
	fmt.Fprintf(p.out, "%s %s: ", message, choices)

	response, err := p.in.ReadString('\n')
	if err != nil && response == "" {
		fmt.Fprintf(p.out, "\nError reading input: %v\n", err)
		if allowCancel {
			return actions.Cancel
		}
		return actions.No
	}

	switch strings.TrimSpace(strings.ToLower(response)) {
	case "y", "yes":
		return actions.Yes
	case "c", "cancel":
		if allowCancel {
			return actions.Cancel
		}
	}
	return actions.No
}
