package debug

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-isatty"
)

const (
	lineLength    = 70
	clearSequence = "\x1b[H\x1b[2J\x1b[3J"
	blockMarker   = "Executing"

	defaultTitle      = "Log"
	defaultErrorTitle = "Error"
)

var dumper = spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}

// Evaluator answers whether debug output is currently allowed.
type Evaluator interface {
	Enabled(ctx context.Context, allowOverride bool) bool
}

// Reporter writes banner-framed console output while the gate is open.
type Reporter struct {
	gate   Evaluator
	out    io.Writer
	errOut io.Writer
}

type renderMode int

const (
	renderSequential renderMode = iota
	renderDeep
)

type variant struct {
	title  string
	clear  bool
	render renderMode
	errors bool
}

// Log prints values; a leading string is used as the banner title.
func (r *Reporter) Log(args ...any) {
	r.report(variant{title: defaultTitle}, args)
}

// Dir dumps values recursively.
func (r *Reporter) Dir(args ...any) {
	r.report(variant{title: defaultTitle, render: renderDeep}, args)
}

// Error prints values to the error writer.
func (r *Reporter) Error(args ...any) {
	r.report(variant{title: defaultErrorTitle, errors: true}, args)
}

// Clear clears the screen before printing values.
func (r *Reporter) Clear(args ...any) {
	r.report(variant{title: defaultTitle, clear: true}, args)
}

// ClearDir clears the screen before dumping values recursively.
func (r *Reporter) ClearDir(args ...any) {
	r.report(variant{title: defaultTitle, clear: true, render: renderDeep}, args)
}

// Wrap opens a block under header and returns a writer for its lines, or nil when
// debug mode is off. Lines starting with "Executing" are followed by a divider.
// Closing the block is left to the caller.
func (r *Reporter) Wrap(header string) func(message string) {
	if !r.gate.Enabled(context.Background(), false) {
		return nil
	}
	writeBanner(r.out, header)
	return func(message string) {
		fmt.Fprintln(r.out, message)
		if strings.HasPrefix(message, blockMarker) {
			writeDivider(r.out)
		}
	}
}

func (r *Reporter) report(v variant, args []any) {
	if !r.gate.Enabled(context.Background(), false) {
		return
	}
	if v.clear {
		r.clearScreen()
	}
	title := v.title
	if len(args) > 0 {
		if text, ok := args[0].(string); ok {
			if text != "" {
				title = text
			}
			args = args[1:]
		}
	}

	writeBanner(r.out, title)
	target := r.out
	if v.errors {
		target = r.errOut
	}
	switch v.render {
	case renderDeep:
		dumper.Fdump(target, args...)
	default:
		fmt.Fprintln(target, args...)
	}
	writeDivider(r.out)
}

func (r *Reporter) clearScreen() {
	f, ok := r.out.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return
	}
	io.WriteString(r.out, clearSequence)
}

// Banner renders the title line framed by dashes.
func Banner(title string) string {
	padding := lineLength - utf8.RuneCountInString(title) - 2
	if padding < 0 {
		padding = 0
	}
	dashes := strings.Repeat("-", padding/2)
	return dashes + " " + strings.ToUpper(title) + " " + dashes
}

func writeBanner(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n\n", Banner(title))
}

func writeDivider(w io.Writer) {
	fmt.Fprintf(w, "\n%s\n\n", strings.Repeat("-", lineLength))
}

// NewReporter creates a reporter; nil writers default to stdout and stderr.
func NewReporter(gate Evaluator, out, errOut io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Reporter{gate: gate, out: out, errOut: errOut}
}
