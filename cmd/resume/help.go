package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resume <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render      Render a markdown resume to HTML and PDF")
	fmt.Fprintln(w, "  export      Export a markdown resume to DOCX and PDF")
	fmt.Fprintln(w, "  prepare     Normalize source resumes into a markdown library")
	fmt.Fprintln(w, "  parse       Print the parsed resume as YAML or JSON")
	fmt.Fprintln(w, "  doctor      Check system configuration")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "'resume <file.md>' is shorthand for 'resume render <file.md>'.")
	fmt.Fprintln(w, "Run 'resume help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resume render <input.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a markdown resume to a two-column HTML page and print it to PDF.")
	fmt.Fprintln(w, "The HTML file is always written; outputs default to <input>.html and")
	fmt.Fprintln(w, "<input>.pdf next to the input (or in output.defaultDir).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output PDF path")
	fmt.Fprintln(w, "      --html <path>           Output HTML path")
	fmt.Fprintln(w, "      --html-only             Write HTML only, skip PDF")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Content:")
	fmt.Fprintln(w, "      --profile-image <uri>   Profile photo path or URL")
	fmt.Fprintln(w, "      --target-label <s>      Small label in the page header")
	fmt.Fprintln(w, "      --headline <s>          Page header title (default: <role> Resume)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <name|path>     CSS style name or file path")
	fmt.Fprintln(w, "      --css <path>            Extra CSS file appended after the style")
	fmt.Fprintln(w, "      --template <name>       Template name")
	fmt.Fprintln(w, "      --asset-path <dir>      Custom asset directory (styles/, templates/)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --engine <s>            PDF engine: chrome, weasyprint")
	fmt.Fprintln(w, "  -t, --timeout <d>           PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printExportUsage prints usage for the export command.
func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resume export <input.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export a markdown resume with external converters (pandoc, textutil,")
	fmt.Fprintln(w, "soffice). PDF falls back to the built-in renderer unless disabled.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --formats <list>        Comma-separated formats (default: docx,pdf)")
	fmt.Fprintln(w, "      --output-dir <dir>      Output directory (default: input directory)")
	fmt.Fprintln(w, "      --no-fallback           Disable the built-in PDF fallback")
	fmt.Fprintln(w, "      --engine <s>            Fallback PDF engine: chrome, weasyprint")
	fmt.Fprintln(w, "  -t, --timeout <d>           Fallback PDF timeout")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printPrepareUsage prints usage for the prepare command.
func printPrepareUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resume prepare --source-dir <dir> --library-dir <dir> --assets-dir <dir>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert PDF, markdown, text and HTML resumes into markdown library files.")
	fmt.Fprintln(w, "Images embedded in PDFs are extracted with pdfimages; the largest one is")
	fmt.Fprintln(w, "copied to profile_candidate.jpg.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --source-dir <dir>      Directory with source resumes")
	fmt.Fprintln(w, "      --library-dir <dir>     Directory for normalized markdown")
	fmt.Fprintln(w, "      --assets-dir <dir>      Directory for extracted images")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printParseUsage prints usage for the parse command.
func printParseUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resume parse <input.md> [--format yaml|json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the structured resume record extracted from markdown.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --format <s>            Output format: yaml, json (default: yaml)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resume doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome and the external converters used by render, export")
	fmt.Fprintln(w, "and prepare.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                  Output results as JSON")
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show debug logs")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "export":
		printExportUsage(env.Stdout)
	case "prepare":
		printPrepareUsage(env.Stdout)
	case "parse":
		printParseUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: resume version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: resume help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
