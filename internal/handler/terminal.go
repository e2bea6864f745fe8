package handler

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"go-minimart/internal/apperrors"

	"github.com/shopspring/decimal"
)

// malformedError is input that could not be parsed. The screen that asked
// for it gives up and the state is left unchanged.
type malformedError struct {
	input string
	want  string
}

func (e *malformedError) Error() string {
	return fmt.Sprintf("%q is not %s", e.input, e.want)
}

func (e *malformedError) Unwrap() error { return apperrors.ErrValidation }

const rule = "------------------------------------------------------------------------------------"

// Terminal is line-oriented console IO. Every read returns io.EOF once the
// input is exhausted, which callers treat as a request to quit.
type Terminal struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{scanner: bufio.NewScanner(in), out: out}
}

func (t *Terminal) Printf(format string, args ...interface{}) {
	fmt.Fprintf(t.out, format, args...)
}

func (t *Terminal) Println(args ...interface{}) {
	fmt.Fprintln(t.out, args...)
}

// Title prints a screen heading with its underline.
func (t *Terminal) Title(path string) {
	t.Printf("\n%s\n", path)
	t.Println(strings.Repeat("=", 16))
}

// Prompt prints label and returns the next line, trimmed.
func (t *Terminal) Prompt(label string) (string, error) {
	t.Printf("%s", label)
	if !t.scanner.Scan() {
		t.Println()
		if err := t.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(t.scanner.Text()), nil
}

func (t *Terminal) PromptInt(label string) (int, error) {
	line, err := t.Prompt(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, &malformedError{input: line, want: "a whole number"}
	}
	return n, nil
}

func (t *Terminal) PromptDecimal(label string) (decimal.Decimal, error) {
	line, err := t.Prompt(label)
	if err != nil {
		return decimal.Zero, err
	}
	return parseDecimal(line)
}

// PromptOptionalInt returns nil when the line is blank.
func (t *Terminal) PromptOptionalInt(label string) (*int, error) {
	line, err := t.Prompt(label)
	if err != nil || line == "" {
		return nil, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return nil, &malformedError{input: line, want: "a whole number"}
	}
	return &n, nil
}

// PromptOptionalDecimal returns nil when the line is blank.
func (t *Terminal) PromptOptionalDecimal(label string) (*decimal.Decimal, error) {
	line, err := t.Prompt(label)
	if err != nil || line == "" {
		return nil, err
	}
	d, err := parseDecimal(line)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Table returns a tabwriter on the terminal output. Callers must Flush it.
func (t *Terminal) Table() *tabwriter.Writer {
	return tabwriter.NewWriter(t.out, 0, 0, 2, ' ', 0)
}

// Abort handles a failed read. Malformed input is reported and swallowed so
// the screen returns to its menu; anything else, io.EOF included, is returned.
func (t *Terminal) Abort(err error) error {
	var malformed *malformedError
	if errors.As(err, &malformed) {
		t.Printf("Invalid input: %v. Nothing was changed.\n", malformed)
		return nil
	}
	return err
}

// Failed prints err and reports whether the operation was rejected. A change
// that was applied but not saved does not count as a failure; see Unsaved.
func (t *Terminal) Failed(err error) bool {
	if err == nil || errors.Is(err, apperrors.ErrNotPersisted) {
		return false
	}
	t.Printf("Error: %v\n", err)
	return true
}

// Unsaved warns when an applied change could not be written to disk.
func (t *Terminal) Unsaved(err error) {
	if errors.Is(err, apperrors.ErrNotPersisted) {
		t.Printf("Warning: the change could not be saved to disk: %v\n", err)
	}
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimPrefix(s, "$")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &malformedError{input: s, want: "a valid amount"}
	}
	return d, nil
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
