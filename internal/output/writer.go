// Package output writes the run artifacts: the timestamped report, which
// accumulates across writes, and the adjacency file, which holds exactly one
// run's contacts.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nvandessel/ballfall/internal/constants"
	"github.com/nvandessel/ballfall/internal/logging"
	"github.com/nvandessel/ballfall/internal/models"
	"github.com/nvandessel/ballfall/internal/pathutil"
)

// Report section headers.
const (
	SectionRule      = "-----------------------------------------------------"
	PositionsHeading = "List of ball x/y positions"
	ContactsHeading  = "List of contacts"
)

// Writer produces both artifacts in Dir.
type Writer struct {
	Dir           string
	AdjacencyName string
	ReportLayout  string

	// Now supplies the report timestamp. Defaults to time.Now.
	Now    func() time.Time
	Logger *slog.Logger
}

// NewWriter returns a Writer with the default file names.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	return &Writer{
		Dir:           dir,
		AdjacencyName: constants.AdjacencyFileName,
		ReportLayout:  constants.ReportTimeLayout,
		Now:           time.Now,
		Logger:        logger,
	}
}

// ReportName formats t with layout and appends the report extension,
// e.g. 20240131-235959.txt.
func ReportName(t time.Time, layout string) string {
	if layout == "" {
		layout = constants.ReportTimeLayout
	}
	return t.Format(layout) + constants.ReportExt
}

func (w *Writer) logger() *slog.Logger {
	if w.Logger == nil {
		return logging.Discard()
	}
	return w.Logger
}

func (w *Writer) now() time.Time {
	if w.Now == nil {
		return time.Now()
	}
	return w.Now()
}

// WriteReport appends a positions section and a contacts section to the
// report named after the current time, creating it if needed. It returns the
// report path.
func (w *Writer) WriteReport(bodies []models.Body, pairs []models.ContactPair) (string, error) {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(w.Dir, ReportName(w.now(), w.ReportLayout))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("opening report %s: %w", pathutil.RedactPath(path), err)
	}

	werr := writeReport(f, bodies, pairs)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return "", fmt.Errorf("writing report %s: %w", pathutil.RedactPath(path), werr)
	}

	w.logger().Debug("report written", "path", pathutil.RedactPath(path), "bodies", len(bodies), "contacts", len(pairs))
	return path, nil
}

func writeReport(out io.Writer, bodies []models.Body, pairs []models.ContactPair) error {
	bw := bufio.NewWriter(out)
	fmt.Fprintln(bw, SectionRule)
	fmt.Fprintln(bw, PositionsHeading)
	for _, b := range bodies {
		fmt.Fprintln(bw, models.FormatPosition(b.Position))
	}
	fmt.Fprintln(bw, SectionRule)
	fmt.Fprintln(bw, ContactsHeading)
	if err := writePairs(bw, pairs); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteAdjacency replaces the adjacency file with one "i;j" line per pair.
// An existing file is removed first so no earlier run's lines survive.
func (w *Writer) WriteAdjacency(pairs []models.ContactPair) (string, error) {
	name := w.AdjacencyName
	if name == "" {
		name = constants.AdjacencyFileName
	}
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(w.Dir, name)
	if err := pathutil.EnsureWithin(path, w.Dir); err != nil {
		return "", err
	}

	switch err := os.Remove(path); {
	case err == nil:
		w.logger().Info("previous version deleted", "path", pathutil.RedactPath(path))
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("removing previous %s: %w", name, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", name, err)
	}
	bw := bufio.NewWriter(f)
	werr := writePairs(bw, pairs)
	if werr == nil {
		werr = bw.Flush()
	}
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return "", fmt.Errorf("writing %s: %w", name, werr)
	}

	w.logger().Debug("adjacency written", "path", pathutil.RedactPath(path), "contacts", len(pairs))
	return path, nil
}

func writePairs(w io.Writer, pairs []models.ContactPair) error {
	for _, p := range pairs {
		if _, err := fmt.Fprintln(w, p.String()); err != nil {
			return err
		}
	}
	return nil
}
