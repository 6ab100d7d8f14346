package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS before sizing workers, with logging only in verbose mode.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches to a command and returns the process exit code.
// A first argument that is not a command is treated as input to normalize.
func runMain(ctx context.Context, args []string, env *Environment) int {
	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	var err error
	if len(cmdArgs) == 0 || !isCommand(cmdArgs[0]) {
		err = runNormalize(ctx, cmdArgs, env)
	} else {
		switch cmdArgs[0] {
		case "normalize":
			err = runNormalize(ctx, cmdArgs[1:], env)
		case "check":
			err = runCheck(ctx, cmdArgs[1:], env)
		case "config":
			err = runConfig(cmdArgs[1:], env)
		case "version":
			fmt.Fprintf(env.Stdout, "mathmd %s\n", Version)
		case "help":
			runHelp(cmdArgs[1:], env)
		}
	}

	// -h/--help already printed usage
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
	}
	return exitCodeFor(err)
}

// isCommand reports whether arg names a subcommand rather than an input.
func isCommand(arg string) bool {
	switch arg {
	case "normalize", "check", "config", "version", "help":
		return true
	}
	return false
}

// hasVerboseFlag scans raw arguments for -v or --verbose before flag parsing.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}
