package header

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/endosim/simcheck/internal/normalize"
)

// Token is one column name taken from a header line.
type Token struct {
	Position int    // zero-based column index in the file
	Raw      string // text between delimiters, as read
	Name     string // Raw without one layer of quotes and surrounding whitespace
}

// ReadLine reads the first line of r without its line terminator.
// A line ends at "\n", "\r" or "\r\n". ok is false when r holds no data at all.
func ReadLine(r io.Reader) (line string, ok bool, err error) {
	br := bufio.NewReader(r)
	var b strings.Builder
	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			return b.String(), ok, nil
		}
		if err != nil {
			return "", false, fmt.Errorf("read header line: %w", err)
		}
		ok = true
		if c == '\n' || c == '\r' {
			return b.String(), true, nil
		}
		b.WriteByte(c)
	}
}

// Split normalizes a raw header line and splits it into column tokens.
// Leading non-printable characters (a byte-order mark, for instance) are
// dropped, empty fields are kept, and file order is preserved.
func Split(line string, delim rune) []Token {
	fields := strings.Split(normalize.CleanLine(line), string(delim))
	return tokens(fields)
}

// Tokens builds tokens from column names that are already separated,
// e.g. the field names of a columnar file.
func Tokens(names []string) []Token {
	return tokens(names)
}

func tokens(fields []string) []Token {
	out := make([]Token, len(fields))
	for i, f := range fields {
		out[i] = Token{Position: i, Raw: f, Name: normalize.CleanToken(f)}
	}
	return out
}

// Names returns the cleaned names of toks.
func Names(toks []Token) []string {
	names := make([]string, len(toks))
	for i, t := range toks {
		names[i] = t.Name
	}
	return names
}
