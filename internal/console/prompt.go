// Package console reads the report parameters from an interactive operator.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoInput is returned when the input stream ends before an answer is read
var ErrNoInput = errors.New("no input")

// Prompter asks questions on out and reads answers line by line from in
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (p *Prompter) ask(question string) (string, error) {
	if _, err := fmt.Fprint(p.out, question); err != nil {
		return "", err
	}

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// City asks for the city name, returned lower-cased
func (p *Prompter) City() (string, error) {
	answer, err := p.ask("Enter the city (Dubai, Lahore, Murree): ")
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", fmt.Errorf("city must not be empty")
	}
	return strings.ToLower(answer), nil
}

// Year asks for the report year
func (p *Prompter) Year() (int, error) {
	answer, err := p.ask("Enter the year: ")
	if err != nil {
		return 0, err
	}
	year, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q: %w", answer, err)
	}
	return year, nil
}

// WantsMonthly asks whether a monthly report is wanted instead of a yearly one
func (p *Prompter) WantsMonthly() (bool, error) {
	answer, err := p.ask("Do you want to generate a report for a specific month? (yes/no): ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "yes", "y":
		return true, nil
	default:
		return false, nil
	}
}

// Month asks for the month, returned as typed
func (p *Prompter) Month() (string, error) {
	return p.ask("Enter the month (e.g., Jan, Feb, Mar): ")
}
