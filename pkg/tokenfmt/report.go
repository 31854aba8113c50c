package tokenfmt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/spicery/venlyn-tokenizer/pkg/tokenizer"
)

// ReportOpts controls how Report renders an error.
type ReportOpts struct {
	Path  string // Shown before the position; "<stdin>" when empty
	Color bool
}

// Report writes err to w. An unrecognized character is shown with its
// source line and a caret under it:
//
//	source.vn:1:9: error: unrecognized character '#'
//	  let x = #
//	          ^
//
// Any other error is written on a single line.
func Report(w io.Writer, src string, err error, opts ReportOpts) {
	errColor := color.New(color.FgRed, color.Bold)
	locColor := color.New(color.Bold)
	caretColor := color.New(color.FgGreen, color.Bold)
	for _, c := range []*color.Color{errColor, locColor, caretColor} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	path := opts.Path
	if path == "" {
		path = "<stdin>"
	}

	var uerr *tokenizer.UnrecognizedCharacterError
	if !errors.As(err, &uerr) {
		fmt.Fprintf(w, "%s %v\n", errColor.Sprint("error:"), err)
		return
	}

	fmt.Fprintf(w, "%s %s unrecognized character %q\n",
		locColor.Sprintf("%s:%d:%d:", path, uerr.Pos.Line, uerr.Pos.Col),
		errColor.Sprint("error:"), uerr.Char)

	line, ok := sourceLine(src, uerr.Pos.Line)
	if !ok {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)
	fmt.Fprintf(w, "  %s%s\n", caretIndent(line, uerr.Pos.Col), caretColor.Sprint("^"))
}

func sourceLine(src string, line int) (string, bool) {
	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return "", false
	}
	return strings.TrimSuffix(lines[line-1], "\r"), true
}

// caretIndent returns the padding that lines a caret up under column col
// of line. Tabs are kept so the terminal expands them alike.
func caretIndent(line string, col int) string {
	var sb strings.Builder
	n := 1
	for _, r := range line {
		if n >= col {
			break
		}
		if r == '\t' {
			sb.WriteRune('\t')
		} else {
			sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
		}
		n++
	}
	return sb.String()
}
