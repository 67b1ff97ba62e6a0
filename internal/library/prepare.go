package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-resume/internal/command"
	"github.com/alnah/go-resume/internal/fileutil"
)

// ProfileCandidateName is the file the largest extracted image is copied to.
const ProfileCandidateName = "profile_candidate.jpg"

// Options configures Prepare.
type Options struct {
	SourceDir  string
	LibraryDir string
	AssetsDir  string
	Runner     command.Runner // runs pdfimages; default os/exec
	Log        zerolog.Logger
}

// Summary reports what Prepare produced.
type Summary struct {
	Prepared         []string          // markdown files written, in processing order
	ExtractedImages  int               // images written to the assets directory
	ProfileCandidate string            // path of profile_candidate.jpg, if present
	Failed           map[string]string // source file name -> reason
}

// Prepare converts every supported file directly inside SourceDir.
// Files are processed in name order; a file that fails is recorded in
// Summary.Failed and the batch continues. Unsupported files and
// directories are skipped.
func Prepare(ctx context.Context, opts Options) (*Summary, error) {
	if !fileutil.DirExists(opts.SourceDir) {
		return nil, fmt.Errorf("%w: %s", ErrSourceDirNotFound, opts.SourceDir)
	}
	for _, dir := range []string{opts.LibraryDir, opts.AssetsDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if opts.Runner == nil {
		opts.Runner = &command.ExecRunner{}
	}

	entries, err := os.ReadDir(opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	sum := &Summary{Prepared: []string{}, Failed: map[string]string{}}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if entry.IsDir() {
			continue
		}

		src := filepath.Join(opts.SourceDir, entry.Name())
		out, images, err := prepareFile(ctx, src, opts)
		sum.ExtractedImages += images
		if err != nil {
			opts.Log.Warn().Err(err).Str("file", entry.Name()).Msg("failed to process source")
			sum.Failed[entry.Name()] = err.Error()
			continue
		}
		if out != "" {
			opts.Log.Debug().Str("file", entry.Name()).Str("output", out).Msg("prepared source")
			sum.Prepared = append(sum.Prepared, out)
		}
	}

	candidate := filepath.Join(opts.AssetsDir, ProfileCandidateName)
	if fileutil.FileExists(candidate) {
		sum.ProfileCandidate = candidate
	}
	return sum, nil
}

// prepareFile dispatches on extension. An empty output path with a nil
// error means the file produced no markdown.
func prepareFile(ctx context.Context, src string, opts Options) (out string, images int, err error) {
	switch strings.ToLower(filepath.Ext(src)) {
	case ".pdf":
		return preparePDF(ctx, src, opts)
	case ".md", ".txt":
		out, err = prepareText(src, opts.LibraryDir, passThrough)
	case ".html", ".htm":
		out, err = prepareText(src, opts.LibraryDir, htmlToMarkdown)
	}
	return out, 0, err
}

// libraryPath is <libraryDir>/<safe stem>.md.
func libraryPath(libraryDir, src string) string {
	return filepath.Join(libraryDir, fileutil.SafeStem(src)+".md")
}

// writeSource writes the normalized markdown for src.
func writeSource(path, srcName, body string) error {
	content := "# Resume Source: " + srcName + "\n\n" + body + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { // #nosec G306 -- user library
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
