package library

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/alnah/go-resume/internal/command"
	"github.com/alnah/go-resume/internal/fileutil"
)

// preparePDF writes the text layer to the library and the embedded images
// to the assets directory. A PDF without text yields no markdown, and its
// images are kept but not considered for the profile candidate.
func preparePDF(ctx context.Context, src string, opts Options) (string, int, error) {
	text, err := extractText(src)
	if err != nil {
		return "", 0, err
	}

	images, err := extractImages(ctx, opts.Runner, src, opts.AssetsDir)
	switch {
	case errors.Is(err, command.ErrCommandNotFound):
		opts.Log.Warn().Str("file", filepath.Base(src)).Msg("pdfimages not installed, skipping images")
	case err != nil:
		opts.Log.Warn().Err(err).Str("file", filepath.Base(src)).Msg("image extraction failed")
	}

	if text == "" {
		return "", len(images), nil
	}

	out := libraryPath(opts.LibraryDir, src)
	if err := writeSource(out, filepath.Base(src), text); err != nil {
		return "", len(images), err
	}

	if largest := largestFile(images); largest != "" {
		if err := fileutil.CopyFile(largest, filepath.Join(opts.AssetsDir, ProfileCandidateName)); err != nil {
			return out, len(images), fmt.Errorf("copying profile candidate: %w", err)
		}
	}
	return out, len(images), nil
}

// extractText returns the text of every non-empty page, each preceded by
// a "--- PAGE n ---" marker.
func extractText(path string) (text string, err error) {
	// The parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPDFText, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		if f != nil {
			_ = f.Close()
		}
		return "", fmt.Errorf("%w: %v", ErrPDFText, err)
	}
	defer func() { _ = f.Close() }()

	fonts := make(map[string]*pdf.Font)
	var parts []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}

		pageText, err := p.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", ErrPDFText, i, err)
		}
		if trimmed := strings.TrimSpace(pageText); trimmed != "" {
			parts = append(parts, fmt.Sprintf("\n\n--- PAGE %d ---\n%s", i, trimmed))
		}
	}

	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}

// pdfimagesName matches "<prefix>-<page>-<num>.<ext>" from pdfimages -p.
var pdfimagesName = regexp.MustCompile(`-(\d+)-(\d+)\.([A-Za-z0-9]+)$`)

type rawImage struct {
	path string
	page int
	num  int
	ext  string
}

// extractImages runs pdfimages in a scratch directory and moves its output
// into assetsDir as <stem>_p<page>_<n>.<ext>, n counting from 1 per page.
func extractImages(ctx context.Context, runner command.Runner, src, assetsDir string) ([]string, error) {
	scratch, err := os.MkdirTemp("", "resume-images-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFImages, err)
	}
	defer func() { _ = os.RemoveAll(scratch) }()

	_, stderr, err := runner.Run(ctx, "pdfimages", "-all", "-p", src, filepath.Join(scratch, "img"))
	if err != nil {
		if errors.Is(err, command.ErrCommandNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrPDFImages, strings.TrimSpace(stderr), err)
	}

	raw, err := listImages(scratch)
	if err != nil {
		return nil, err
	}

	stem := fileutil.SafeStem(src)
	var written []string
	perPage := map[int]int{}
	for _, img := range raw {
		perPage[img.page]++
		name := fmt.Sprintf("%s_p%d_%d.%s", stem, img.page, perPage[img.page], imageExt(img.ext))
		dst := filepath.Join(assetsDir, name)
		if err := fileutil.CopyFile(img.path, dst); err != nil {
			return written, fmt.Errorf("%w: %v", ErrPDFImages, err)
		}
		written = append(written, dst)
	}
	return written, nil
}

// listImages returns pdfimages output ordered by page, then image number.
// Side files such as CCITT .params are ignored.
func listImages(dir string) ([]rawImage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFImages, err)
	}

	var images []rawImage
	for _, e := range entries {
		m := pdfimagesName.FindStringSubmatch(e.Name())
		if m == nil || strings.EqualFold(m[3], "params") {
			continue
		}
		page, _ := strconv.Atoi(m[1])
		num, _ := strconv.Atoi(m[2])
		images = append(images, rawImage{
			path: filepath.Join(dir, e.Name()),
			page: page,
			num:  num,
			ext:  strings.ToLower(m[3]),
		})
	}

	sort.Slice(images, func(i, j int) bool {
		if images[i].page != images[j].page {
			return images[i].page < images[j].page
		}
		return images[i].num < images[j].num
	})
	return images, nil
}

// imageExt keeps common image extensions and maps the rest to "bin".
func imageExt(ext string) string {
	switch ext {
	case "jpx":
		return "jp2"
	case "jpg", "jpeg", "png", "jp2":
		return ext
	default:
		return "bin"
	}
}

// largestFile returns the biggest file in paths; the first wins ties.
func largestFile(paths []string) string {
	var best string
	var bestSize int64 = -1
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if info.Size() > bestSize {
			best, bestSize = p, info.Size()
		}
	}
	return best
}
