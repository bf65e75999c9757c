package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// prompter wraps the terminal streams. Every menu reads line-oriented
// input through it so tests can drive the CLI with canned input.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *prompter) println(args ...interface{}) {
	fmt.Fprintln(p.out, args...)
}

// ask prints the label and returns the trimmed answer.
func (p *prompter) ask(label string) string {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

// askOptional marks the field as skippable; an empty answer means "leave
// unchanged" or "not set" depending on the operation.
func (p *prompter) askOptional(label string) string {
	return p.ask(label + " (optional, enter to skip)")
}

func (p *prompter) confirm(label string) bool {
	answer := strings.ToLower(p.ask(label + " [y/N]"))
	return answer == "y" || answer == "yes"
}

// choose renders a numbered menu and returns the selected option index,
// or -1 when the answer is not one of the options.
func (p *prompter) choose(title string, options []string) int {
	p.println()
	p.println("=== " + title + " ===")
	for i, option := range options {
		p.printf("%d. %s\n", i+1, option)
	}
	answer := p.ask("Select")
	for i := range options {
		if answer == fmt.Sprintf("%d", i+1) {
			return i
		}
	}
	return -1
}
