package cmd

import (
	"github.com/spf13/cobra"
	"github.com/ziadkadry99/csslab/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize csslab configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to choose the port and where progress is stored, and writes a .csslab.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
