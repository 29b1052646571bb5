package gcp_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvsearch/gcp"
	"github.com/katalvlaran/lvsearch/graph"
	"github.com/katalvlaran/lvsearch/search"
)

// ExampleTabuSearch two-colors an even cycle. The RSatur start is already
// proper, so the search stops before the first move.
func ExampleTabuSearch() {
	g, err := graph.Cycle(6)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	res, err := gcp.TabuSearch(context.Background(), g, 2, nil, search.DefaultOptions())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("proper:", res.Proper(), "iterations:", res.Stats.Iterations)
	// Output: proper: true iterations: 0
}
