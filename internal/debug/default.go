package debug

import "sync/atomic"

var std atomic.Pointer[Reporter]

func init() {
	std.Store(NewReporter(New(nil, NewFileStore(nil, DefaultPath)), nil, nil))
}

// SetDefault replaces the reporter used by the package-level helpers.
func SetDefault(r *Reporter) {
	if r != nil {
		std.Store(r)
	}
}

// Default returns the package-level reporter.
func Default() *Reporter { return std.Load() }

func Log(args ...any)      { std.Load().Log(args...) }
func Dir(args ...any)      { std.Load().Dir(args...) }
func Error(args ...any)    { std.Load().Error(args...) }
func Clear(args ...any)    { std.Load().Clear(args...) }
func ClearDir(args ...any) { std.Load().ClearDir(args...) }

// Wrap opens a block on the package-level reporter.
func Wrap(header string) func(message string) { return std.Load().Wrap(header) }
