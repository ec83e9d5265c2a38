package algospmv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/cwbudde/algo-spmv/device"
	"github.com/cwbudde/algo-spmv/internal/cmath"
)

// TuningKey identifies a class of matrices sharing a preferred width.
// RowLen is rounded up to a power of two.
type TuningKey struct {
	Format Format
	RowLen int
}

// Tuning caches measured vector widths per format and row length.
// The zero value is not usable; create instances with NewTuning.
type Tuning struct {
	mu      sync.RWMutex
	entries map[TuningKey]int
}

// DefaultTuning is consulted by NewPlan when PlanOptions.VecWidth is zero.
var DefaultTuning = NewTuning()

// NewTuning creates an empty tuning table.
func NewTuning() *Tuning {
	return &Tuning{entries: make(map[TuningKey]int)}
}

// KeyFor returns the bucket a row length falls into.
func KeyFor(format Format, rowLen int) TuningKey {
	bucket := 1
	for bucket < rowLen {
		bucket <<= 1
	}

	return TuningKey{Format: format, RowLen: bucket}
}

// Record stores the preferred width for matrices of the given format and row length.
// Returns ErrInvalidVecWidth if width is not a power of two up to device.MaxVecWidth.
func (t *Tuning) Record(format Format, rowLen, width int) error {
	if !cmath.IsPowerOf2(width) || width > device.MaxVecWidth {
		return fmt.Errorf("%w: %d", ErrInvalidVecWidth, width)
	}

	t.mu.Lock()
	t.entries[KeyFor(format, rowLen)] = width
	t.mu.Unlock()

	return nil
}

// Lookup returns the recorded width for the bucket of rowLen.
func (t *Tuning) Lookup(format Format, rowLen int) (int, bool) {
	t.mu.RLock()
	w, ok := t.entries[KeyFor(format, rowLen)]
	t.mu.RUnlock()

	return w, ok
}

// Len returns the number of recorded entries.
func (t *Tuning) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.entries)
}

// Clear removes all entries.
func (t *Tuning) Clear() {
	t.mu.Lock()
	t.entries = make(map[TuningKey]int)
	t.mu.Unlock()
}

// Export writes one "format rowlen width" line per entry, sorted.
func (t *Tuning) Export(w io.Writer) error {
	t.mu.RLock()
	keys := make([]TuningKey, 0, len(t.entries))

	for k := range t.entries {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Format != keys[j].Format {
			return keys[i].Format < keys[j].Format
		}

		return keys[i].RowLen < keys[j].RowLen
	})

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s %d %d\n", k.Format, k.RowLen, t.entries[k]))
	}
	t.mu.RUnlock()

	for _, line := range lines {
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("write tuning: %w", err)
		}
	}

	return nil
}

// Import merges entries written by Export. Blank lines and lines starting
// with '#' are skipped.
func (t *Tuning) Import(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return fmt.Errorf("tuning line %d: want 3 fields, got %d", lineNo, len(fields))
		}

		format, err := parseFormat(fields[0])
		if err != nil {
			return fmt.Errorf("tuning line %d: %w", lineNo, err)
		}

		rowLen, err := strconv.Atoi(fields[1])
		if err != nil || rowLen < 0 {
			return fmt.Errorf("tuning line %d: bad row length %q", lineNo, fields[1])
		}

		width, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("tuning line %d: bad width %q", lineNo, fields[2])
		}

		if err := t.Record(format, rowLen, width); err != nil {
			return fmt.Errorf("tuning line %d: %w", lineNo, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read tuning: %w", err)
	}

	return nil
}

func parseFormat(name string) (Format, error) {
	for _, f := range []Format{FormatCSR, FormatELL, FormatKroneckerELL} {
		if f.String() == name {
			return f, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// ImportTuning loads tuning data from a file into DefaultTuning.
func ImportTuning(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open tuning file: %w", err)
	}

	defer f.Close()

	if err := DefaultTuning.Import(f); err != nil {
		return fmt.Errorf("failed to import tuning: %w", err)
	}

	return nil
}

// ExportTuning saves DefaultTuning to a file.
func ExportTuning(filename string) error {
	return ExportTuningTo(filename, DefaultTuning)
}

// ExportTuningTo saves a specific tuning table to a file.
func ExportTuningTo(filename string, tuning *Tuning) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create tuning file: %w", err)
	}

	defer file.Close()

	if err := tuning.Export(file); err != nil {
		return fmt.Errorf("failed to export tuning: %w", err)
	}

	return nil
}
