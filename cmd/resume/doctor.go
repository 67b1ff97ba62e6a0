package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/go-rod/rod/lib/launcher"
)

// Status tags for human-readable output.
var (
	tagOK    = color.New(color.FgGreen).SprintFunc()("[OK]")
	tagWarn  = color.New(color.FgYellow).SprintFunc()("[WARN]")
	tagError = color.New(color.FgRed).SprintFunc()("[ERROR]")
	tagSkip  = color.New(color.Faint).SprintFunc()("[--]")
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status     string          `json:"status"` // "ready", "warnings", "errors"
	Chrome     chromeInfo      `json:"chrome"`
	Converters []converterInfo `json:"converters"`
	Env        envInfo         `json:"environment"`
	System     systemInfo      `json:"system"`
	Warnings   []string        `json:"warnings,omitempty"`
	Errors     []string        `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// converterInfo holds detection results for one external tool.
type converterInfo struct {
	Name   string `json:"name"`
	Found  bool   `json:"found"`
	Path   string `json:"path,omitempty"`
	UsedBy string `json:"used_by"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// externalTools lists the commands the CLI may shell out to.
var externalTools = []struct {
	name, usedBy, missing string
}{
	{"pandoc", "export docx, export pdf", "pandoc not found: export needs it for DOCX and most PDF engines"},
	{"textutil", "export docx (macOS)", ""},
	{"soffice", "export pdf from docx", ""},
	{"weasyprint", "render --engine weasyprint, export pdf", ""},
	{"pdfimages", "prepare (PDF images)", "pdfimages not found: install poppler-utils to extract images from PDFs"},
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		switch arg {
		case "--json":
			jsonOutput = true
		case "-h", "--help":
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		default:
			fmt.Fprintf(env.Stderr, "error: unknown flag: %s\n", arg)
			printDoctorUsage(env.Stderr)
			return ExitUsage
		}
	}

	result := runDoctor(env.lookPath())

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(lookPath func(string) (string, error)) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkConverters(result, lookPath)
	checkChrome(result)
	checkEnvironment(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkConverters looks up each external tool on PATH.
func checkConverters(result *doctorResult, lookPath func(string) (string, error)) {
	for _, tool := range externalTools {
		info := converterInfo{Name: tool.name, UsedBy: tool.usedBy}
		if p, err := lookPath(tool.name); err == nil {
			info.Found = true
			info.Path = p
		} else if tool.missing != "" {
			result.Warnings = append(result.Warnings, tool.missing)
		}
		result.Converters = append(result.Converters, info)
	}
}

// hasConverter reports whether checkConverters found name.
func (r *doctorResult) hasConverter(name string) bool {
	for _, c := range r.Converters {
		if c.Name == name {
			return c.Found
		}
	}
	return false
}

// checkChrome detects Chrome/Chromium installation. A missing browser is
// only a warning when weasyprint can print PDFs instead.
func checkChrome(result *doctorResult) {
	report := func(msg string) {
		if result.hasConverter("weasyprint") {
			result.Warnings = append(result.Warnings, msg+" (render with --engine weasyprint)")
			return
		}
		result.Errors = append(result.Errors, msg)
	}

	chromePath := result.Env.BrowserBin
	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			report("Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		report(fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	out, err := exec.Command(chromePath, "--version").Output() // #nosec G204 -- browser path from env or rod lookup
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if result.Chrome.Found && (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("RESUME_CONTAINER") == "1" {
		return true, "RESUME_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory is writable; every PDF engine
// prints from a temp file.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	f, err := os.CreateTemp(tmpDir, "resume-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	_ = f.Close()
	_ = os.Remove(filepath.Clean(f.Name()))
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "resume doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  %s Found at %s\n", tagOK, r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  %s Version: %s\n", tagOK, r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintf(w, "  %s Sandbox: enabled\n", tagOK)
		} else {
			fmt.Fprintf(w, "  %s Sandbox: disabled (ROD_NO_SANDBOX=1)\n", tagOK)
		}
	} else {
		fmt.Fprintf(w, "  %s Not found\n", tagError)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Converters")
	for _, c := range r.Converters {
		if c.Found {
			fmt.Fprintf(w, "  %s %s: %s\n", tagOK, c.Name, c.Path)
		} else {
			fmt.Fprintf(w, "  %s %s: not found (%s)\n", tagSkip, c.Name, c.UsedBy)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  %s Platform: %s/%s\n", tagOK, r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  %s Container: detected (%s)\n", tagOK, r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintf(w, "  %s CI: detected\n", tagOK)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintf(w, "  %s Temp directory: writable\n", tagOK)
	} else {
		fmt.Fprintf(w, "  %s Temp directory: not writable\n", tagError)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  %s %s\n", tagWarn, warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  %s %s\n", tagError, err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to render")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
