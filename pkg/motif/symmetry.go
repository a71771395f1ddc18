package motif

import "fmt"

// OrderConstraint requires the network node assigned to Lower to have a
// smaller index than the node assigned to Higher.
type OrderConstraint struct {
	Lower  int
	Higher int
}

// String returns the constraint as "lower<higher".
func (c OrderConstraint) String() string { return fmt.Sprintf("%d<%d", c.Lower, c.Higher) }

// Symmetry describes the automorphism group of a motif through a stabilizer
// chain, together with the order constraints that select exactly one
// occurrence out of every class of automorphic occurrences.
type Symmetry struct {
	// GroupOrder is the size of the automorphism group.
	GroupOrder int
	// Orbits are the orbits of the full automorphism group.
	Orbits [][]int
	// Base lists the positions fixed one after another along the chain.
	Base []int
	// Constraints are the symmetry-breaking order constraints.
	Constraints []OrderConstraint
}

// Symmetry computes the motif's stabilizer chain.
//
// Starting with no fixed positions, it repeatedly takes the first orbit of
// the current stabilizer with more than one member, adds the constraint
// v < w between its smallest member v and every other member w, and then
// fixes v. The chain ends when every orbit is a singleton. By the
// orbit-stabilizer theorem the group order is the product of the orbit sizes
// met along the way.
//
// An occurrence satisfies all constraints for exactly one member of its
// class under the automorphism group, so enforcing them during the search
// reports every physical occurrence once.
func (m *Motif) Symmetry() *Symmetry {
	sym := &Symmetry{GroupOrder: 1}
	var fixed []int
	for {
		orbits := m.Orbits(fixed...)
		if sym.Orbits == nil {
			sym.Orbits = orbits
		}

		var orbit []int
		for _, o := range orbits {
			if len(o) > 1 {
				orbit = o
				break
			}
		}
		if orbit == nil {
			return sym
		}

		v := orbit[0]
		for _, w := range orbit[1:] {
			sym.Constraints = append(sym.Constraints, OrderConstraint{Lower: v, Higher: w})
		}
		sym.GroupOrder *= len(orbit)
		sym.Base = append(sym.Base, v)
		fixed = append(fixed, v)
	}
}
