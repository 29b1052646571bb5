package graph_test

import (
	"fmt"

	"github.com/katalvlaran/lvsearch/graph"
)

// ExampleComplement shows that stable sets of a path are cliques of its complement.
func ExampleComplement() {
	p, _ := graph.Path(4)
	c, err := graph.Complement(p)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(c.Edges())
	// Output: [[0 2] [0 3] [1 3]]
}
