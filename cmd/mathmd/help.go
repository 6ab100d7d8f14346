package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mathmd [command] [flags] [input...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Normalize pasted Markdown with math into canonical Markdown:")
	fmt.Fprintln(w, "$...$ and $$...$$ delimiters, LaTeX shorthand, GFM tables.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  normalize  Normalize files or stdin (default)")
	fmt.Fprintln(w, "  check      List files that normalization would change")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mathmd help <command>' for details on a specific command.")
}

// printPipelineFlags prints the flags shared by normalize and check.
func printPipelineFlags(w io.Writer) {
	fmt.Fprintln(w, "Pipeline:")
	fmt.Fprintln(w, "      --no-shorthand        Skip shorthand expansion (sqrt, ∫ab, vt, ...)")
	fmt.Fprintln(w, "      --no-tables           Skip table synthesis from comma rows")
	fmt.Fprintln(w, "      --nfc                 Apply Unicode NFC normalization first")
	fmt.Fprintln(w, "      --align-tables        Pad table cells to equal display width")
	fmt.Fprintln(w, "      --separator <s>       Table alignment marker (default :---)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed progress")
	fmt.Fprintln(w, "      --no-color            Disable colored output")
}

// printNormalizeUsage prints usage for the normalize command.
func printNormalizeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mathmd [normalize] [flags] [input...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Normalize Markdown files, directories, or stdin.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Files or directories; - or nothing reads stdin")
	fmt.Fprintln(w, "           A single input without -o or -i prints to stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Write results under this directory")
	fmt.Fprintln(w, "  -i, --in-place            Rewrite input files that change")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	printPipelineFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MATHMD_CONFIG, MATHMD_INPUT_DIR, MATHMD_OUTPUT_DIR, MATHMD_WORKERS, MATHMD_NFC")
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mathmd check [flags] [input...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List inputs that are not canonical. Exits with status 4 if any.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	printPipelineFlags(w)
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mathmd config [-c name]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration as YAML, after environment overrides.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "normalize":
		printNormalizeUsage(env.Stdout)
	case "check":
		printCheckUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mathmd version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mathmd help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
