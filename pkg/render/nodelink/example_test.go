package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/motifscan/pkg/network"
	"github.com/matzehuels/motifscan/pkg/render/nodelink"
)

func ExampleToDOT() {
	g := network.New(nil)
	for _, id := range []string{"A", "B", "C"} {
		_, _ = g.EnsureNode(id)
	}
	_ = g.AddEdge(network.Edge{From: "A", To: "B", Type: "ppi"})
	_ = g.AddEdge(network.Edge{From: "B", To: "C", Type: "ppi"})

	dot := nodelink.ToDOT(g, nodelink.Options{Links: [][2]string{{"A", "B"}}})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "--") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "A" -- "B" [color="#d62728", penwidth=3];
	// "B" -- "C" [color="#b0b0b0"];
}
