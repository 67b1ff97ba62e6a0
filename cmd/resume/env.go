package main

import (
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/alnah/go-resume/internal/command"
	"github.com/alnah/go-resume/internal/config"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, configuration, and external command execution.
type Environment struct {
	Now      func() time.Time
	Stdout   io.Writer
	Stderr   io.Writer
	Config   *config.Config                    // Used when no --config or RESUME_CONFIG is given
	Runner   command.Runner                    // Runs pandoc, weasyprint, soffice, pdfimages
	LookPath func(file string) (string, error) // Finds converters on PATH
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:      time.Now,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Config:   config.DefaultConfig(),
		Runner:   &command.ExecRunner{},
		LookPath: exec.LookPath,
	}
}

// runner returns env.Runner, or an os/exec runner when unset.
func (e *Environment) runner() command.Runner {
	if e.Runner == nil {
		return &command.ExecRunner{}
	}
	return e.Runner
}

// lookPath returns env.LookPath, or exec.LookPath when unset.
func (e *Environment) lookPath() func(string) (string, error) {
	if e.LookPath == nil {
		return exec.LookPath
	}
	return e.LookPath
}

// baseConfig returns a copy of env.Config, or the defaults when unset.
func (e *Environment) baseConfig() *config.Config {
	if e.Config == nil {
		return config.DefaultConfig()
	}
	cfg := *e.Config
	cfg.Export.Formats = append([]string(nil), e.Config.Export.Formats...)
	return &cfg
}

// now returns env.Now(), or time.Now() when unset.
func (e *Environment) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}
