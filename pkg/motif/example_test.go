package motif_test

import (
	"fmt"

	"github.com/matzehuels/motifscan/pkg/motif"
)

func ExampleMotif_Symmetry() {
	square := motif.MustParse("square", "0-1:E,1-2:E,2-3:E,3-0:E")
	sym := square.Symmetry()
	fmt.Println("order:", sym.GroupOrder)
	fmt.Println("constraints:", sym.Constraints)
	// Output:
	// order: 8
	// constraints: [0<1 0<2 0<3 1<3]
}

func ExampleParse() {
	m, err := motif.Parse("feedforward", "0-1:reg, 1-2:reg, 0-2:reg")
	if err != nil {
		panic(err)
	}
	fmt.Println(m.Size(), m)
	fmt.Println(m.Validate())
	// Output:
	// 3 0-1:reg,1-2:reg,0-2:reg
	// <nil>
}

func ExampleMotif_Orbits() {
	path := motif.MustParse("path", "0-1:E,1-2:E,2-3:E")
	fmt.Println(path.Orbits())
	fmt.Println(path.Orbits(0))
	// Output:
	// [[0 3] [1 2]]
	// [[0] [1] [2] [3]]
}
