package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"nleigen/pkg/eigen"
	"nleigen/pkg/problem"
	"nleigen/pkg/result"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("Usage: nleigen <problem_file>")
	}
	path := flag.Arg(0)

	prob, err := problem.Load(path)
	if err != nil {
		log.Fatalf("Error reading problem file: %v", err)
	}
	fmt.Printf("Problem: n=%d, %d mass terms, %d eigenpairs requested\n",
		prob.Dim, prob.NumMass, prob.NumEigen)

	eng := eigen.New(prob, eigen.DefaultConfig())
	if err := eng.Execute(); err != nil {
		log.Fatalf("Eigenvalue extraction failed: %v", err)
	}
	for _, w := range eng.Warnings() {
		log.Printf("warning: %s", w)
	}

	fmt.Println("\nEigenvalues:")
	for i, w := range eng.Omega() {
		fmt.Printf("  Omega[%d] = %.12e\n", i, w)
	}

	dir := filepath.Dir(path)
	if err := result.Write(dir, prob.Dim, eng.Omega(), eng.Phi()); err != nil {
		log.Fatalf("Error writing results: %v", err)
	}
	fmt.Printf("\nResults written to %s and %s\n",
		filepath.Join(dir, "Phi.dat"), filepath.Join(dir, "Omega.dat"))
}
