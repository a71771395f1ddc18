package motif

import (
	"slices"
	"strings"
)

// Permutation maps every position to its image: p[i] is the image of i.
type Permutation []int

// IsIdentity reports whether p maps every position to itself.
func (p Permutation) IsIdentity() bool {
	for i, v := range p {
		if i != v {
			return false
		}
	}
	return true
}

// IsAutomorphism reports whether p is a bijection on the motif's positions
// that preserves the set of edge types between every pair of positions.
func (m *Motif) IsAutomorphism(p Permutation) bool {
	if len(p) != m.Size() {
		return false
	}
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return false
		}
		seen[v] = true
	}
	s := newAutSearch(m)
	for i := range p {
		for j := range p {
			if s.pair[i][j] != s.pair[p[i]][p[j]] {
				return false
			}
		}
	}
	return true
}

// Automorphisms enumerates the motif's automorphism group, identity first.
//
// If limit > 0, at most limit permutations are returned; otherwise the whole
// group is returned. Symmetric motifs can have very large groups (a star with
// k leaves has k! automorphisms), so callers that only need orbits or the
// group order should use [Motif.Orbits] or [Motif.Symmetry] instead.
func (m *Motif) Automorphisms(limit int) []Permutation {
	if m.Size() == 0 {
		return []Permutation{{}}
	}
	identity := make(Permutation, m.Size())
	for i := range identity {
		identity[i] = i
	}
	out := []Permutation{identity}
	if limit == 1 {
		return out
	}
	// Candidates are scanned in neighbor order, so the identity may turn up
	// anywhere in the enumeration; it is already at the front.
	newAutSearch(m).run(nil, func(p Permutation) bool {
		if p.IsIdentity() {
			return false
		}
		out = append(out, slices.Clone(p))
		return limit > 0 && len(out) >= limit
	})
	return out
}

// Orbits returns the orbits of the positions under the automorphisms that fix
// every position in fixed. Each orbit is sorted ascending and orbits are
// ordered by their smallest member. Fixed positions form singleton orbits.
//
// Orbits decides membership with one existence search per (orbit, position)
// pair, so it never enumerates the group.
func (m *Motif) Orbits(fixed ...int) [][]int {
	s := newAutSearch(m)
	var orbits [][]int
	for u := range m.Size() {
		placed := false
		if !slices.Contains(fixed, u) {
			for i, orbit := range orbits {
				r := orbit[0]
				if slices.Contains(fixed, r) || s.sig[r] != s.sig[u] {
					continue
				}
				pins := make(map[int]int, len(fixed)+1)
				for _, f := range fixed {
					pins[f] = f
				}
				pins[r] = u
				if s.exists(pins) {
					orbits[i] = append(orbits[i], u)
					placed = true
					break
				}
			}
		}
		if !placed {
			orbits = append(orbits, []int{u})
		}
	}
	return orbits
}

// autSearch is a backtracking search for type-preserving bijections of a
// motif onto itself.
type autSearch struct {
	n    int
	pair [][]string // sorted edge types between i and j, "" if none
	sig  []string   // multiset of incident pair labels, used as a cheap filter
	nbrs [][]int

	img  []int
	used []bool
}

func newAutSearch(m *Motif) *autSearch {
	n := m.Size()
	s := &autSearch{
		n:    n,
		pair: make([][]string, n),
		sig:  make([]string, n),
		nbrs: make([][]int, n),
	}
	for i := range n {
		types := make(map[int][]string)
		for _, l := range m.RequiredEdges(i) {
			types[l.Neighbor] = append(types[l.Neighbor], string(l.Type))
		}
		s.pair[i] = make([]string, n)
		labels := make([]string, 0, len(types))
		for j, ts := range types {
			slices.Sort(ts)
			s.pair[i][j] = strings.Join(ts, "\x00")
			labels = append(labels, s.pair[i][j])
		}
		slices.Sort(labels)
		s.sig[i] = strings.Join(labels, "\x01")
		s.nbrs[i] = m.Neighbors(i)
	}
	return s
}

// exists reports whether an automorphism extends the given partial mapping.
func (s *autSearch) exists(pins map[int]int) bool {
	found := false
	s.run(pins, func(Permutation) bool {
		found = true
		return true
	})
	return found
}

// run enumerates all automorphisms extending pins, calling visit for each.
// visit returns true to stop the enumeration.
func (s *autSearch) run(pins map[int]int, visit func(Permutation) bool) {
	s.img = slices.Repeat([]int{-1}, s.n)
	s.used = make([]bool, s.n)

	keys := make([]int, 0, len(pins))
	for p := range pins {
		keys = append(keys, p)
	}
	slices.Sort(keys)
	for _, p := range keys {
		q := pins[p]
		if q < 0 || q >= s.n || !s.consistent(p, q) {
			return
		}
		s.assign(p, q)
	}

	s.extend(s.order(keys), 0, visit)
}

// order lists the unpinned positions in breadth-first order so that, past
// the first, every position has an already-assigned neighbor whose image
// restricts the candidates.
func (s *autSearch) order(pinned []int) []int {
	seen := make([]bool, s.n)
	out := make([]int, 0, s.n)
	var queue []int
	visitFrom := func(root int) {
		if seen[root] {
			return
		}
		seen[root] = true
		queue = append(queue[:0], root)
		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]
			if s.img[p] < 0 {
				out = append(out, p)
			}
			for _, q := range s.nbrs[p] {
				if !seen[q] {
					seen[q] = true
					queue = append(queue, q)
				}
			}
		}
	}
	for _, p := range pinned {
		visitFrom(p)
	}
	for p := range s.n {
		visitFrom(p)
	}
	return out
}

func (s *autSearch) extend(order []int, k int, visit func(Permutation) bool) bool {
	if k == len(order) {
		return visit(s.img)
	}
	p := order[k]

	candidates := s.candidates(p)
	for _, q := range candidates {
		if !s.consistent(p, q) {
			continue
		}
		s.assign(p, q)
		stop := s.extend(order, k+1, visit)
		s.unassign(p)
		if stop {
			return true
		}
	}
	return false
}

func (s *autSearch) candidates(p int) []int {
	for _, r := range s.nbrs[p] {
		if s.img[r] >= 0 {
			return s.nbrs[s.img[r]]
		}
	}
	all := make([]int, s.n)
	for i := range all {
		all[i] = i
	}
	return all
}

// consistent reports whether mapping p to q agrees with every assignment
// made so far.
func (s *autSearch) consistent(p, q int) bool {
	if s.used[q] || s.sig[p] != s.sig[q] {
		return false
	}
	for r, ir := range s.img {
		if ir >= 0 && s.pair[p][r] != s.pair[q][ir] {
			return false
		}
	}
	return true
}

func (s *autSearch) assign(p, q int) {
	s.img[p] = q
	s.used[q] = true
}

func (s *autSearch) unassign(p int) {
	s.used[s.img[p]] = false
	s.img[p] = -1
}
