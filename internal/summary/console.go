package summary

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// PrintTable writes the table to w as aligned columns for a quick look at
// the results without opening the output file. Empty tables print nothing.
func PrintTable(w io.Writer, table *Table) error {
	if table.Empty() {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	cols := table.Columns()
	for i, col := range cols {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col)
	}
	fmt.Fprintln(tw)

	for _, row := range table.Rows() {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, cell)
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}
