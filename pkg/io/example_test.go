package io_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/motifscan/pkg/io"
)

func ExampleReadTSV() {
	g, err := io.ReadTSV(strings.NewReader("# toy\nA\tB\tppi\nB\tC\tppi\nC\tA\tppi\n"))
	if err != nil {
		panic(err)
	}
	fmt.Println(g.NodeCount(), g.EdgeCount(), g.EdgeTypes())
	// Output: 3 3 [ppi]
}

func ExampleParseMotif() {
	m, err := io.ParseMotif("square", "0-1:E,1-2:E,2-3:E,3-0:E")
	if err != nil {
		panic(err)
	}
	fmt.Println(m.Size(), m.Symmetry().GroupOrder)
	// Output: 4 8
}
