package compiler

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"cocktailseed/model"
)

// Suggester proposes the closest base ingredient for an unmatched name.
type Suggester interface {
	Suggest(name string) (model.BaseIngredient, bool)
}

// WriteSummary prints the operator report for a compile written to scriptPath. suggester may be
// nil.
func WriteSummary(w io.Writer, res *Result, scriptPath string, suggester Suggester) {
	fmt.Fprintf(w, "Wrote %s with %d cocktails.\n", scriptPath, res.Cocktails)
	if len(res.Failures) == 0 {
		fmt.Fprintln(w, "All recipe ingredients successfully matched to base_ingredients.")
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "ERROR: The following ingredients were not found in base_ingredients and were included as fatal errors in the SQL:")
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Ingredient", "Used in", "Closest base ingredient"})
	for _, f := range res.Failures {
		hint := ""
		if suggester != nil {
			if b, ok := suggester.Suggest(f.Ingredient); ok {
				hint = b.Name
			}
		}
		t.AppendRow(table.Row{f.Ingredient, strings.Join(f.Cocktails, ", "), hint})
	}
	t.Render()
}
