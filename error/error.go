package error

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/abnf-go/abnf/parser"
)

// ParseError is the user-visible failure shape: one error code, one line
// number, and an optional detail such as the offending rule name. When a
// file path is known, the message quotes the offending source line.
type ParseError struct {
	Code     parser.ErrorCode
	Detail   string
	FilePath string
	Line     int
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Line != 0 {
		fmt.Fprintf(&b, "%v: ", e.Line)
	}
	fmt.Fprintf(&b, "error: %v", e.Code)
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %v", e.Detail)
	}

	line := readLine(e.FilePath, e.Line)
	if line != "" {
		fmt.Fprintf(&b, "\n    %v", line)
	}

	return b.String()
}

func readLine(filePath string, row int) string {
	if filePath == "" || row <= 0 {
		return ""
	}

	f, err := os.Open(filePath)
	if err != nil {
		return ""
	}
	defer f.Close()

	i := 1
	s := bufio.NewScanner(f)
	for s.Scan() {
		if i == row {
			return s.Text()
		}
		i++
	}

	return ""
}
