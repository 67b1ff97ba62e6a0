package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	resume "github.com/alnah/go-resume"
	"github.com/alnah/go-resume/internal/yamlutil"
)

// runParse prints the record parsed from a markdown resume.
func runParse(args []string, env *Environment) error {
	f := &parseFlags{}
	positional, err := parseFlagSet(newParseFlagSet(f, env.Stderr), args)
	if err != nil {
		return err
	}
	input, err := singleInput(positional)
	if err != nil {
		return err
	}

	markdown, err := os.ReadFile(input) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}
	rec := resume.Parse(string(markdown))

	out, err := encodeRecord(rec, f.format)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(out)
	return err
}

// encodeRecord serializes rec as "yaml" or "json".
func encodeRecord(rec resume.Record, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "yaml", "yml":
		return yamlutil.Marshal(rec)
	case "json":
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: --format %q (want yaml or json)", ErrInvalidArgs, format)
	}
}
