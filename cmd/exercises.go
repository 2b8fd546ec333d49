package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/csslab/internal/catalog"
)

var exercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "List the exercises and which ones are completed",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(context.Background(), false)
		if err != nil {
			return err
		}
		defer rt.Close()

		current := rt.manager.Snapshot().Index
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tID\tTITLE\tCONCEPTS\tDONE")
		for i, ex := range catalog.All() {
			marker := " "
			if i == current {
				marker = "*"
			}
			done := ""
			if rt.manager.IsCompleted(ex.ID) {
				done = "✓"
			}
			fmt.Fprintf(w, "%s%d\t%s\t%s\t%s\t%s\n", marker, i+1, ex.ID, ex.Title, strings.Join(ex.Concepts, ", "), done)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(exercisesCmd)
}
