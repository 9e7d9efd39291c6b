package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRow_String(t *testing.T) {
	row := Row{"a": "x", "b": 1.5, "c": nil}

	assert.Equal(t, "x", row.String("a"))
	assert.Equal(t, "1.5", row.String("b"))
	assert.Equal(t, "", row.String("c"))
	assert.Equal(t, "", row.String("missing"))
}

func TestRow_Float(t *testing.T) {
	row := Row{"n": "42.5", "f": 3.0, "s": "abc", "pad": " 7 "}

	v, ok := row.Float("n")
	require.True(t, ok)
	assert.Equal(t, 42.5, v)

	v, ok = row.Float("f")
	require.True(t, ok)
	assert.Equal(t, 3.0, v)

	_, ok = row.Float("s")
	assert.False(t, ok)

	v, ok = row.Float("pad")
	require.True(t, ok)
	assert.Equal(t, 7.0, v)

	_, ok = row.Float("missing")
	assert.False(t, ok)
}

func TestFilter(t *testing.T) {
	rows := []Row{
		{"Region": "North", "State": "CA"},
		{"Region": "North", "State": "WA"},
		{"Region": "South", "State": "TX"},
	}

	assert.Len(t, Filter(rows, nil), 3)
	assert.Len(t, Filter(rows, map[string]string{"Region": "North"}), 2)
	assert.Len(t, Filter(rows, map[string]string{"Region": "North", "State": "CA"}), 1)
	assert.Empty(t, Filter(rows, map[string]string{"Region": "West"}))
}

func TestColumnTypeSampling(t *testing.T) {
	rows := []Row{
		{"name": "alpha", "qty": "1"},
		{"name": "beta", "qty": "2"},
		{"name": "gamma", "qty": "x"},
	}

	assert.True(t, AllString(rows, "name", 10))
	assert.False(t, AllNumeric(rows, "qty", 10))
	assert.True(t, AllNumeric(rows, "qty", 2)) // bad value outside the sample
	assert.False(t, AllString(rows, "missing", 10))
	assert.False(t, AllNumeric(rows, "missing", 10))
}

func TestReadCSV(t *testing.T) {
	input := "Region,State,Sales\nNorth,CA,100\nSouth,TX,80\n"

	ds, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.NotEmpty(t, ds.ID)
	assert.Equal(t, []string{"Region", "State", "Sales"}, ds.Columns)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, "North", ds.Rows[0].String("Region"))
	assert.Equal(t, "100", ds.Rows[0].String("Sales"))
}

func TestReadCSV_ShortRecords(t *testing.T) {
	input := "a,b,c\n1,2\n"

	ds, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, ds.Rows, 1)
	assert.Equal(t, "2", ds.Rows[0].String("b"))
	assert.Equal(t, "", ds.Rows[0].String("c"))
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte("Region,Sales\nNorth,100\n"), 0o644))

	ds, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, "orders", ds.Name)
	assert.Len(t, ds.Rows, 1)

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
