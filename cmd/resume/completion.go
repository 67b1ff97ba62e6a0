package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags, comma-separated
}

// commandDef describes a command for completion.
type commandDef struct {
	Name       string
	Desc       string
	Flags      []flagDef
	Args       []string // fixed positional values (shells, command names)
	FileSuffix string   // positional file arguments, e.g. ".md"
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"engine": {Values: []string{"chrome", "weasyprint"}},
	"format": {Values: []string{"yaml", "json"}},

	// File flags with glob patterns
	"config":        {FileGlob: "*.yaml,*.yml"},
	"style":         {FileGlob: "*.css"},
	"css":           {FileGlob: "*.css"},
	"output":        {FileGlob: "*.pdf"},
	"html":          {FileGlob: "*.html"},
	"profile-image": {FileGlob: "*.png,*.jpg,*.jpeg,*.webp"},

	// Directory flags
	"asset-path":  {IsDir: true},
	"output-dir":  {IsDir: true},
	"source-dir":  {IsDir: true},
	"library-dir": {IsDir: true},
	"assets-dir":  {IsDir: true},
}

// newDoctorFlagSet mirrors the flags runDoctorCmd accepts.
func newDoctorFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SortFlags = false
	fs.Bool("json", false, "output results as JSON")
	return fs
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int64", "uint":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets.
func getCommands() []commandDef {
	names := []string{"render", "export", "prepare", "parse", "doctor", "completion", "version", "help"}

	return []commandDef{
		{
			Name:       "render",
			Desc:       "Render a markdown resume to HTML and PDF",
			Flags:      extractFlagsFromFlagSet(newRenderFlagSet(&renderFlags{}, nil)),
			FileSuffix: ".md",
		},
		{
			Name:       "export",
			Desc:       "Export a markdown resume to DOCX and PDF",
			Flags:      extractFlagsFromFlagSet(newExportFlagSet(&exportFlags{}, nil)),
			FileSuffix: ".md",
		},
		{
			Name:  "prepare",
			Desc:  "Normalize source resumes into a markdown library",
			Flags: extractFlagsFromFlagSet(newPrepareFlagSet(&prepareFlags{}, nil)),
		},
		{
			Name:       "parse",
			Desc:       "Print the parsed resume as YAML or JSON",
			Flags:      extractFlagsFromFlagSet(newParseFlagSet(&parseFlags{}, nil)),
			FileSuffix: ".md",
		},
		{
			Name:  "doctor",
			Desc:  "Check system configuration",
			Flags: extractFlagsFromFlagSet(newDoctorFlagSet()),
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish)},
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: names[:len(names)-1],
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = generateBash(getCommands())
	case ShellZsh:
		script = generateZsh(getCommands())
	case ShellFish:
		script = generateFish(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

// generateBash builds a script for `complete -F`.
func generateBash(commands []commandDef) string {
	var b strings.Builder

	names := make([]string, 0, len(commands))
	for _, c := range commands {
		names = append(names, c.Name)
	}

	b.WriteString("# bash completion for resume\n\n")
	b.WriteString("_resume_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    COMPREPLY=()\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(names, " "))
	b.WriteString("        return 0\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n")
	b.WriteString("    case \"${cmd}\" in\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "        %s)\n", c.Name)

		var valueCases []string
		var words []string
		for _, f := range c.Flags {
			opts := "--" + f.Long
			words = append(words, "--"+f.Long)
			if f.Short != "" {
				opts += "|-" + f.Short
				words = append(words, "-"+f.Short)
			}
			switch f.Type {
			case flagEnum:
				valueCases = append(valueCases, fmt.Sprintf("                %s) COMPREPLY=( $(compgen -W %q -- \"${cur}\") ); return 0 ;;", opts, strings.Join(f.Values, " ")))
			case flagFile:
				valueCases = append(valueCases, fmt.Sprintf("                %s) COMPREPLY=( $(compgen -f -X %s -- \"${cur}\") ); return 0 ;;", opts, bashExclude(f.FileGlob)))
			case flagDir:
				valueCases = append(valueCases, fmt.Sprintf("                %s) COMPREPLY=( $(compgen -d -- \"${cur}\") ); return 0 ;;", opts))
			case flagString, flagInt:
				valueCases = append(valueCases, fmt.Sprintf("                %s) return 0 ;;", opts))
			}
		}

		if len(valueCases) > 0 {
			b.WriteString("            case \"${prev}\" in\n")
			for _, vc := range valueCases {
				b.WriteString(vc + "\n")
			}
			b.WriteString("            esac\n")
		}

		switch {
		case len(words) > 0 && c.FileSuffix != "":
			b.WriteString("            if [[ \"${cur}\" == -* ]]; then\n")
			fmt.Fprintf(&b, "                COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(words, " "))
			b.WriteString("            else\n")
			fmt.Fprintf(&b, "                COMPREPLY=( $(compgen -f -X %s -- \"${cur}\") )\n", bashExclude("*"+c.FileSuffix))
			b.WriteString("            fi\n")
		case len(words) > 0:
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(words, " "))
		case len(c.Args) > 0:
			b.WriteString("            if [[ ${COMP_CWORD} -eq 2 ]]; then\n")
			fmt.Fprintf(&b, "                COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(c.Args, " "))
			b.WriteString("            fi\n")
		}
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("    return 0\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -o filenames -F _resume_completions resume\n")
	return b.String()
}

// bashExclude turns "*.yaml,*.yml" into a compgen -X pattern that keeps
// only matching files.
func bashExclude(globs string) string {
	parts := strings.Split(globs, ",")
	if len(parts) == 1 {
		return "'!" + parts[0] + "'"
	}
	return "'!@(" + strings.Join(parts, "|") + ")'"
}

// generateZsh builds a #compdef script using _arguments and _describe.
func generateZsh(commands []commandDef) string {
	var b strings.Builder

	b.WriteString("#compdef resume\n\n")
	b.WriteString("_resume() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshQuote(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		specs := make([]string, 0, len(c.Flags)+1)
		for _, f := range c.Flags {
			specs = append(specs, zshFlagSpec(f))
		}
		switch {
		case c.FileSuffix != "":
			specs = append(specs, fmt.Sprintf("'*:file:_files -g \"*%s\"'", c.FileSuffix))
		case len(c.Args) > 0:
			specs = append(specs, fmt.Sprintf("'1:%s:(%s)'", c.Name, strings.Join(c.Args, " ")))
		}
		if len(specs) > 0 {
			b.WriteString("            _arguments \\\n")
			for i, s := range specs {
				b.WriteString("                " + s)
				if i < len(specs)-1 {
					b.WriteString(" \\")
				}
				b.WriteString("\n")
			}
		}
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _resume resume\n")
	return b.String()
}

// zshFlagSpec renders one _arguments spec.
func zshFlagSpec(f flagDef) string {
	desc := "[" + zshQuote(f.Desc) + "]"

	var action string
	switch f.Type {
	case flagBool:
		action = ""
	case flagEnum:
		action = ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		action = ":file:_files -g \"" + strings.ReplaceAll(f.FileGlob, ",", " ") + "\""
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = ":" + f.Long + ":"
	}

	if f.Short == "" {
		return "'--" + f.Long + desc + action + "'"
	}
	return "'(-" + f.Short + " --" + f.Long + ")'{-" + f.Short + ",--" + f.Long + "}'" + desc + action + "'"
}

// zshQuote escapes text for single-quoted zsh words and _arguments brackets.
func zshQuote(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`)
	return r.Replace(s)
}

// generateFish builds `complete -c` lines guarded by helper predicates.
func generateFish(commands []commandDef) string {
	var b strings.Builder

	b.WriteString("# fish completion for resume\n\n")
	b.WriteString("function __fish_resume_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_resume_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c resume -f\n\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "complete -c resume -n __fish_resume_needs_command -a %s -d '%s'\n", c.Name, fishQuote(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range commands {
		cond := fmt.Sprintf("-n '__fish_resume_using_command %s'", c.Name)
		for _, f := range c.Flags {
			line := "complete -c resume " + cond
			if f.Short != "" {
				line += " -s " + f.Short
			}
			line += " -l " + f.Long + " -d '" + fishQuote(f.Desc) + "'"
			switch f.Type {
			case flagEnum:
				line += " -x -a '" + strings.Join(f.Values, " ") + "'"
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			case flagString, flagInt:
				line += " -x"
			}
			b.WriteString(line + "\n")
		}
		if c.FileSuffix != "" {
			fmt.Fprintf(&b, "complete -c resume %s -a '(__fish_complete_suffix %s)'\n", cond, c.FileSuffix)
		}
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "complete -c resume %s -a '%s'\n", cond, strings.Join(c.Args, " "))
		}
	}
	return b.String()
}

// fishQuote escapes text for single-quoted fish strings.
func fishQuote(s string) string {
	return strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s)
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resume completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(resume completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(resume completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    resume completion fish > ~/.config/fish/completions/resume.fish")
}
