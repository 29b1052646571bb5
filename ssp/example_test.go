package ssp_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvsearch/graph"
	"github.com/katalvlaran/lvsearch/search"
	"github.com/katalvlaran/lvsearch/ssp"
)

// ExampleTabuSearch finds a maximum stable set of the path 0-1-2-3.
func ExampleTabuSearch() {
	g, err := graph.Path(4)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	opts := search.DefaultOptions()
	opts.MaxIterations = 20
	opts.Tenure = 2
	opts.Seed = 42

	res, err := ssp.TabuSearch(context.Background(), g, nil, opts)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("cardinality:", res.Cardinality)
	// Output: cardinality: 2
}
