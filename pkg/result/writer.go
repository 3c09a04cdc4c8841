// Package result persists the eigenpair solution in the .dat format read by
// the downstream tooling: Phi.dat and Omega.dat beside the input file.
package result

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

// Write stores omega and phi as Omega.dat and Phi.dat inside dir. n is the
// problem dimension; phi may be nil when zero eigenpairs were requested.
func Write(dir string, n int, omega []float64, phi *mat.Dense) error {
	if err := WritePhi(filepath.Join(dir, "Phi.dat"), n, phi); err != nil {
		return err
	}
	return WriteOmega(filepath.Join(dir, "Omega.dat"), omega)
}

// WritePhi writes the mode shape matrix: a "n r" header line followed by n
// rows of r scientific-notation values.
func WritePhi(path string, n int, phi *mat.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	r := 0
	if phi != nil {
		_, r = phi.Dims()
	}
	fmt.Fprintf(w, "%d %d\n", n, r)
	for i := 0; i < n && r > 0; i++ {
		for j := 0; j < r; j++ {
			if j > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprintf(w, "%.12e", phi.At(i, j))
		}
		fmt.Fprintln(w)
	}

	return flushClose(w, f, path)
}

// WriteOmega writes the frequency vector: an "r" header line followed by one
// value per line.
func WriteOmega(path string, omega []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%d\n", len(omega))
	for _, v := range omega {
		fmt.Fprintf(w, "%.12e\n", v)
	}

	return flushClose(w, f, path)
}

func flushClose(w *bufio.Writer, f *os.File, path string) error {
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
