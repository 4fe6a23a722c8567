// Package terminal adapts the dashboard's user-facing hooks to a line-oriented terminal.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	mu        sync.Mutex
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// AssumeYes makes every confirmation succeed without asking.
func (p *Prompter) AssumeYes() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.assumeYes = true
}

// Confirm accepts "y" or "yes" in any case; anything else, including EOF, is a no.
func (p *Prompter) Confirm(message string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.assumeYes {
		return true
	}

	fmt.Fprintf(p.out, "%s [y/N]: ", message)
	answer, _ := p.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (p *Prompter) Alert(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "! %s\n", message)
}

// Ask prints a prompt and returns the trimmed answer.
func (p *Prompter) Ask(prompt string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "%s: ", prompt)
	answer, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || answer == "") {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(prompt), err)
	}
	return strings.TrimSpace(answer), nil
}

// Navigator sends the user to the login command.
type Navigator struct {
	out     io.Writer
	command string
}

func NewNavigator(out io.Writer, loginCommand string) *Navigator {
	return &Navigator{out: out, command: loginCommand}
}

func (n *Navigator) RedirectToLogin() {
	fmt.Fprintf(n.out, "You are not logged in. Run `%s` first.\n", n.command)
}

// Placeholder returns a func that prints the loading line shown during verification.
func Placeholder(out io.Writer) func() {
	return func() { fmt.Fprintln(out, "Loading...") }
}
