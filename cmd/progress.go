package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/csslab/internal/catalog"
	"github.com/ziadkadry99/csslab/internal/progress"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show how many exercises are completed",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(context.Background(), false)
		if err != nil {
			return err
		}
		defer rt.Close()

		done := 0
		for _, ex := range catalog.All() {
			if rt.manager.IsCompleted(ex.ID) {
				done++
			}
		}

		rep := progress.NewReporter(os.Stdout)
		rep.Start(catalog.Len())
		rep.Update(done, "completati")
		rep.Finish()

		if done == catalog.Len() {
			fmt.Println("Tutti gli esercizi completati! 🎉")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(progressCmd)
}
