package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"penguinlab/domain/dataset"
	"penguinlab/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBundled(t *testing.T) {
	table, err := LoadBundled()
	require.NoError(t, err)

	assert.Equal(t, "penguins", table.Name)
	assert.Equal(t, 344, table.NumRows())
	assert.Equal(t, 8, len(table.Columns))

	for _, name := range dataset.Measurements {
		col, err := table.Column(name)
		require.NoError(t, err)
		assert.Equal(t, dataset.KindNumeric, col.Kind, name)
	}
	for _, name := range []string{dataset.ColSpecies, dataset.ColIsland, dataset.ColSex, dataset.ColYear} {
		col, err := table.Column(name)
		require.NoError(t, err)
		assert.Equal(t, dataset.KindCategorical, col.Kind, name)
	}

	// The shipped file has gaps; that is what the imputation step is for.
	sex, err := table.Column(dataset.ColSex)
	require.NoError(t, err)
	assert.Positive(t, sex.MissingCount())

	species, err := table.Column(dataset.ColSpecies)
	require.NoError(t, err)
	seen := make(map[string]bool)
	for _, label := range species.Labels {
		seen[label] = true
	}
	assert.True(t, seen["Adelie"])
	assert.True(t, seen["Chinstrap"])
	assert.True(t, seen["Gentoo"])
}

func TestReadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mini.csv")
	content := "species,bill_length_mm,notes\nAdelie,39.1,ok\nGentoo,NA,\nChinstrap,49.2,fine\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := NewDataReader(path).ReadTable()
	require.NoError(t, err)

	assert.Equal(t, "mini", table.Name)
	assert.Equal(t, 3, table.NumRows())

	bill, err := table.Column("bill_length_mm")
	require.NoError(t, err)
	assert.Equal(t, dataset.KindNumeric, bill.Kind)
	assert.Equal(t, 1, bill.MissingCount())

	// Unknown non-numeric columns fall back to categorical.
	notes, err := table.Column("notes")
	require.NoError(t, err)
	assert.Equal(t, dataset.KindCategorical, notes.Kind)
	assert.Equal(t, 1, notes.MissingCount())
}

func TestReadCSVRejectsBadNumericCell(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "bill_length_mm\n39.1\nnot-a-number\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := NewDataReader(path).ReadTable()
	assert.Error(t, err)
}

func TestReadMissingFile(t *testing.T) {
	_, err := NewDataReader("/nonexistent/penguins.csv").ReadTable()
	assert.Error(t, err)
}

func TestXLSXRoundTrip(t *testing.T) {
	source := testkit.TableWithMissing(30, 9, 0.1)

	path := filepath.Join(t.TempDir(), "export.xlsx")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteXLSX(source, f))
	require.NoError(t, f.Close())

	loaded, err := NewDataReader(path).ReadTable()
	require.NoError(t, err)

	assert.Equal(t, source.NumRows(), loaded.NumRows())
	assert.Equal(t, source.ColumnNames(), loaded.ColumnNames())

	for _, name := range dataset.Measurements {
		want, err := source.Column(name)
		require.NoError(t, err)
		got, err := loaded.Column(name)
		require.NoError(t, err)
		assert.Equal(t, dataset.KindNumeric, got.Kind)
		assert.Equal(t, want.MissingCount(), got.MissingCount(), name)
	}

	wantSex, err := source.Column(dataset.ColSex)
	require.NoError(t, err)
	gotSex, err := loaded.Column(dataset.ColSex)
	require.NoError(t, err)
	assert.Equal(t, wantSex.Labels, gotSex.Labels)
}
