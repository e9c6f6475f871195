// Package prompt implements ports.Prompter by reading a yes/no answer from
// stdin.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/wow2006/poac/internal/core/ports"
)

// Prompter implements ports.Prompter over arbitrary reader/writer streams.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// New creates a Prompter reading from in and writing prompts to out.
func New(in io.Reader, out io.Writer) ports.Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Confirm prints question followed by " [y/N] " and reads one line of input.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N] ", question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return false, err
		}
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(p.in.Text()))
	return answer == "y" || answer == "yes", nil
}
