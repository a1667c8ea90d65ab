package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"eventregistry/internal/domain"
)

// errInputClosed is returned by the prompts once the reader is exhausted.
var errInputClosed = errors.New("input closed")

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *prompter) println(s string) {
	fmt.Fprintln(p.out, s)
}

// line prints label and returns the next trimmed input line.
func (p *prompter) line(label string) (string, error) {
	p.printf("%s", label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// text asks for field until a non-blank answer is given.
func (p *prompter) text(field string) (string, error) {
	for {
		v, err := p.line(field + ": ")
		if err != nil {
			return "", err
		}
		if v != "" {
			return v, nil
		}
		p.printf("ERRO! : O campo '%s' não pode ficar em branco.\n", field)
	}
}

// positiveInt asks for field until a whole number > 0 is given.
func (p *prompter) positiveInt(field string) (int, error) {
	for {
		v, err := p.line(field + ": ")
		if err != nil {
			return 0, err
		}
		if n, convErr := strconv.Atoi(v); convErr == nil && n > 0 {
			return n, nil
		}
		p.printf("ERRO! : O campo '%s' deve ser um número inteiro positivo.\n", field)
	}
}

// price asks for field until a number >= 0 is given. A decimal comma is accepted.
func (p *prompter) price(field string) (float64, error) {
	for {
		v, err := p.line(field + ": ")
		if err != nil {
			return 0, err
		}
		f, convErr := strconv.ParseFloat(strings.Replace(v, ",", ".", 1), 64)
		switch {
		case convErr != nil:
			p.printf("ERRO! : O campo '%s' deve ser numérico.\n", field)
		case f < 0:
			p.printf("ERRO! : O campo '%s' deve ser um número maior ou igual a zero.\n", field)
		default:
			return f, nil
		}
	}
}

// eventDate asks for field until a DD/MM/YYYY date not earlier than today is
// given, and returns it as typed.
func (p *prompter) eventDate(field string) (string, error) {
	for {
		v, err := p.line(field + " (DD/MM/AAAA): ")
		if err != nil {
			return "", err
		}
		switch _, dateErr := domain.ParseDate(v); {
		case v == "":
			p.printf("ERRO! : O campo '%s' não pode ficar em branco.\n", field)
		case dateErr != nil:
			p.printf("ERRO! : O campo '%s' deve estar no formato DD/MM/AAAA.\n", field)
		default:
			if _, err := domain.ParseEventDate(v); err == nil {
				return v, nil
			}
			p.println("ERRO! : A data não pode ser anterior à data atual.")
		}
	}
}

// yes asks question and reports whether the answer was "s".
func (p *prompter) yes(question string) (bool, error) {
	v, err := p.line(question + " (s/n): ")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(v, "s"), nil
}
