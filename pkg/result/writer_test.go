package result_test

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"nleigen/pkg/result"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
}

func TestWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	phi := mat.NewDense(3, 2, []float64{
		0.1, -1.25e-3,
		2.5, 4.75e6,
		-3, 1.0 / 3.0,
	})
	omega := []float64{12.25, 3.5e-4}

	require.NoError(t, result.Write(dir, 3, omega, phi))

	phiLines := readLines(t, filepath.Join(dir, "Phi.dat"))
	require.Len(t, phiLines, 4)
	assert.Equal(t, "3 2", phiLines[0])
	for i, line := range phiLines[1:] {
		fields := strings.Fields(line)
		require.Len(t, fields, 2, "row %d", i)
		for j, fv := range fields {
			v, err := strconv.ParseFloat(fv, 64)
			require.NoError(t, err)
			assert.InEpsilon(t, phi.At(i, j), v, 1e-11, "phi(%d,%d)", i, j)
		}
	}

	omegaLines := readLines(t, filepath.Join(dir, "Omega.dat"))
	require.Len(t, omegaLines, 3)
	assert.Equal(t, "2", omegaLines[0])
	for i, line := range omegaLines[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		require.NoError(t, err)
		assert.InEpsilon(t, omega[i], v, 1e-11, "omega[%d]", i)
	}
}

func TestWriteZeroEigenpairs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, result.Write(dir, 4, nil, nil))

	phiLines := readLines(t, filepath.Join(dir, "Phi.dat"))
	require.Len(t, phiLines, 1)
	assert.Equal(t, "4 0", phiLines[0])

	omegaLines := readLines(t, filepath.Join(dir, "Omega.dat"))
	require.Len(t, omegaLines, 1)
	assert.Equal(t, "0", omegaLines[0])
}

func TestWriteScientificFormat(t *testing.T) {
	dir := t.TempDir()
	phi := mat.NewDense(1, 1, []float64{1})
	require.NoError(t, result.Write(dir, 1, []float64{2}, phi))

	phiLines := readLines(t, filepath.Join(dir, "Phi.dat"))
	require.Len(t, phiLines, 2)
	assert.Equal(t, "1.000000000000e+00", phiLines[1])
}
