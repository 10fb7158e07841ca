// Package cmd implements the brenkeeper command line interface.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "brenkeeper",
	Short: "Bank statement conversion tool",
	Long: `Brenkeeper converts bank statement exports (CSV, XLSX, or PDF via the
document parser service) into the canonical transaction format, with a
cashflow summary and standardized CSV/JSON output.

Examples:
  brenkeeper convert statement.csv
  brenkeeper convert statement.xlsx --format json --output out.json
  brenkeeper convert statement.pdf --bank chase`,
}

// Execute runs the root command. It is called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in environment variables that match BRENKEEPER_*.
func initConfig() {
	viper.SetEnvPrefix("BRENKEEPER")
	viper.AutomaticEnv()
}
