package xlate

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
)

var stdout io.Writer = os.Stdout

// Run parses flags and executes the selected command.
func Run(args []string) {
	if err := run(args); err != nil {
		// parse and command errors exit with code 1
		log.Fatalf("%v", err)
	}
}

func run(args []string) error {
	setConfigPath(extractConfigPath(args))

	opts := &Options{}
	opts.Init(commandName(args))

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		if opts.Version {
			fmt.Fprintln(stdout, Version())
			return nil
		}
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, err)
			return nil
		}
		return err
	}
	if opts.Version {
		fmt.Fprintln(stdout, Version())
	}
	return nil
}

// commandName returns the first positional argument, skipping global options.
func commandName(args []string) string {
	for i := 0; i < len(args); i++ {
		switch a := args[i]; {
		case a == "-f" || a == "--config":
			i++
		case strings.HasPrefix(a, "-"):
		default:
			return a
		}
	}
	return ""
}

// extractConfigPath scans raw args for -f/--config before full parsing so that
// sub-command Execute can load the configuration.
func extractConfigPath(args []string) string {
	for i, a := range args {
		switch a {
		case "-f", "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		default:
			if strings.HasPrefix(a, "--config=") {
				return strings.TrimPrefix(a, "--config=")
			}
		}
	}
	return ""
}
