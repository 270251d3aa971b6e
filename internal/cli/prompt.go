// Package cli implements the interactive calculator front end. The retry
// loop lives here as a prompter over an arbitrary reader/writer pair so it
// can be driven by tests; field validation itself lives in internal/domain
// and is shared with the HTTP adapter.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/couchcryptid/rainharvest/internal/domain"
)

// Prompter reads values interactively, re-prompting until the input is
// valid. It never returns a validation error to the caller; only io.EOF
// (input exhausted) or a read failure ends a prompt early.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompter creates a Prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// Float prompts with label until a number ≥ minValue is entered.
func (p *Prompter) Float(field, label string, minValue float64) (float64, error) {
	return p.promptFloat(label,
		func(input string) (float64, error) { return domain.ParseFloat(field, input, minValue) },
		fmt.Sprintf("Please enter a value greater than %g", minValue))
}

// PositiveFloat prompts with label until a number strictly greater than
// zero is entered.
func (p *Prompter) PositiveFloat(field, label string) (float64, error) {
	return p.promptFloat(label,
		func(input string) (float64, error) { return domain.ParsePositiveFloat(field, input) },
		"Please enter a value greater than 0")
}

// UnitIntervalFloat prompts with label until a number within [0, 1] is
// entered.
func (p *Prompter) UnitIntervalFloat(field, label string) (float64, error) {
	return p.promptFloat(label,
		func(input string) (float64, error) { return domain.ParseUnitIntervalFloat(field, input) },
		"Please enter a value between 0 and 1")
}

func (p *Prompter) promptFloat(label string, parse func(string) (float64, error), rangeMsg string) (float64, error) {
	for {
		fmt.Fprint(p.out, label)
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}

		v, err := parse(line)
		if err == nil {
			return v, nil
		}

		var invalid *domain.InvalidParameterError
		if errors.As(err, &invalid) && invalid.Reason == domain.ReasonNotANumber {
			fmt.Fprintln(p.out, "Please enter a valid number")
			continue
		}
		fmt.Fprintln(p.out, rangeMsg)
	}
}

// Choice prompts with label until one of the options is entered verbatim.
func (p *Prompter) Choice(label string, options ...string) (string, error) {
	for {
		fmt.Fprint(p.out, label)
		line, err := p.readLine()
		if err != nil {
			return "", err
		}

		line = strings.TrimSpace(line)
		for _, opt := range options {
			if line == opt {
				return line, nil
			}
		}
		fmt.Fprintf(p.out, "Invalid choice. Please enter one of: %s\n", strings.Join(options, ", "))
	}
}

func (p *Prompter) readLine() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.scanner.Text(), nil
}
