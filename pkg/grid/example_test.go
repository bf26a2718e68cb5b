package grid_test

import (
	"fmt"

	"github.com/matzehuels/padd/pkg/grid"
	"github.com/matzehuels/padd/pkg/units"
)

func ExampleCalculate() {
	res := grid.Calculate(1000, grid.Auto{ColumnWidth: units.Px(100), Gap: units.Px(16)})
	fmt.Println(res.TemplateColumns, res.ColumnCount, res.EffectiveGap)
	// Output: repeat(8, 100px) 8 16px
}

func ExampleCalculate_line() {
	res := grid.Calculate(100, grid.Line{Gap: units.Px(8)})
	fmt.Println(res.TemplateColumns, res.EffectiveGap)
	// Output: repeat(13, 1px) 7px
}

func ExampleCalculate_invalid() {
	res := grid.Calculate(1000, grid.Pattern{Columns: []string{"1fr", "wide"}})
	fmt.Println(res.Valid, res.TemplateColumns, res.ColumnCount, res.EffectiveGap)
	// Output: false none 0 0px
}

func ExampleTracks() {
	cfg := grid.Pattern{Columns: []string{"1fr", "2fr", "1fr"}, Gap: units.Px(16)}
	for _, t := range grid.Tracks(432, cfg, grid.AlignStart) {
		fmt.Printf("x=%v w=%v\n", t.X, t.Width)
	}
	// Output:
	// x=0 w=100
	// x=116 w=200
	// x=332 w=100
}
