package queens_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvsearch/queens"
	"github.com/katalvlaran/lvsearch/search"
)

// ExampleTabuSearch places eight non-attacking queens.
func ExampleTabuSearch() {
	opts := search.DefaultOptions()
	opts.MaxIterations = 2000
	opts.Tenure = 3
	opts.Seed = 8

	res, err := queens.TabuSearch(context.Background(), 8, nil, opts)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("solved:", res.Solved())
	// Output: solved: true
}
