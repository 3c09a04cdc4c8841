package problem

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Load reads a problem file from disk. The format is:
//
//	<header line, ignored>
//	<n> <m> <r>
//	<n*n stiffness values, row-major>
//	<n*n values for each of the m mass matrices>
//
// All numbers are whitespace-separated; line breaks carry no meaning past
// the header.
func Load(path string) (*Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening problem file: %w", err)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return p, nil
}

// Parse reads a problem description from r. See Load for the format.
func Parse(r io.Reader) (*Problem, error) {
	br := bufio.NewReader(r)
	if _, err := br.ReadString('\n'); err != nil {
		return nil, fmt.Errorf("reading header line: %w", err)
	}

	sc := bufio.NewScanner(br)
	sc.Split(bufio.ScanWords)

	next := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return sc.Text(), nil
	}
	nextInt := func(name string) (int, error) {
		tok, err := next()
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", name, err)
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", name, err)
		}
		return v, nil
	}

	n, err := nextInt("dimension")
	if err != nil {
		return nil, err
	}
	m, err := nextInt("mass matrix count")
	if err != nil {
		return nil, err
	}
	nEig, err := nextInt("eigenvalue count")
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("dimension must be positive, got %d", n)
	}

	readMatrix := func(name string) (*mat.Dense, error) {
		data := make([]float64, n*n)
		for i := range data {
			tok, err := next()
			if err != nil {
				return nil, fmt.Errorf("reading %s entry %d: %w", name, i, err)
			}
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("reading %s entry %d: %w", name, i, err)
			}
			data[i] = v
		}
		return mat.NewDense(n, n, data), nil
	}

	k0, err := readMatrix("stiffness matrix")
	if err != nil {
		return nil, err
	}

	if m < 1 {
		return nil, fmt.Errorf("need at least one mass matrix, got %d", m)
	}
	masses := make([]*mat.Dense, 0, m)
	for im := 0; im < m; im++ {
		mm, err := readMatrix(fmt.Sprintf("mass matrix %d", im))
		if err != nil {
			return nil, err
		}
		masses = append(masses, mm)
	}

	return New(k0, masses, nEig)
}
