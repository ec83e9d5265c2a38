package algospmv

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTuningRecordLookup(t *testing.T) {
	t.Parallel()

	tuning := NewTuning()
	require.Equal(t, 0, tuning.Len())

	require.NoError(t, tuning.Record(FormatKroneckerELL, 36, 8))
	require.Equal(t, TuningKey{Format: FormatKroneckerELL, RowLen: 64}, KeyFor(FormatKroneckerELL, 36))

	w, ok := tuning.Lookup(FormatKroneckerELL, 50)
	require.True(t, ok, "same bucket")
	require.Equal(t, 8, w)

	_, ok = tuning.Lookup(FormatKroneckerELL, 65)
	require.False(t, ok)

	_, ok = tuning.Lookup(FormatCSR, 36)
	require.False(t, ok)

	require.ErrorIs(t, tuning.Record(FormatCSR, 10, 3), ErrInvalidVecWidth)

	tuning.Clear()
	require.Equal(t, 0, tuning.Len())
}

func TestTuningExportImport(t *testing.T) {
	t.Parallel()

	tuning := NewTuning()
	require.NoError(t, tuning.Record(FormatELL, 16, 4))
	require.NoError(t, tuning.Record(FormatCSR, 100, 16))
	require.NoError(t, tuning.Record(FormatKroneckerELL, 36, 8))

	var buf bytes.Buffer
	require.NoError(t, tuning.Export(&buf))
	require.Equal(t, "csr 128 16\nell 16 4\npell 64 8\n", buf.String())

	loaded := NewTuning()
	require.NoError(t, loaded.Import(strings.NewReader("# measured\n\n"+buf.String())))
	require.Equal(t, 3, loaded.Len())

	w, ok := loaded.Lookup(FormatCSR, 128)
	require.True(t, ok)
	require.Equal(t, 16, w)

	for _, bad := range []string{"csr 16\n", "coo 16 4\n", "csr x 4\n", "csr 16 y\n", "csr 16 6\n"} {
		require.Error(t, NewTuning().Import(strings.NewReader(bad)), "%q", bad)
	}
}

func TestTuningFileAndDefaultWidth(t *testing.T) {
	defer DefaultTuning.Clear()

	path := filepath.Join(t.TempDir(), "tuning.txt")
	require.NoError(t, os.WriteFile(path, []byte("pell 64 16\n"), 0o600))
	require.NoError(t, ImportTuning(path))

	m := mustStencil(t, randomStencil(newRand(11), 4, []int{10, 10}, []int{6, 6}).tables)
	p := mustPlan(t, m, PlanOptions{Strategy: StrategyVector})
	require.Equal(t, 16, p.VecWidth())

	out := filepath.Join(t.TempDir(), "export.txt")
	require.NoError(t, ExportTuning(out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "pell 64 16\n", string(data))

	require.Error(t, ImportTuning(filepath.Join(t.TempDir(), "missing.txt")))
}
