/*
Copyright © 2025 Erik Wahlström <erik@embeddedtools.io>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/embeddedtools/serialmon/internal/timeconv"
	"github.com/spf13/cobra"
)

// timestampCmd represents the timestamp command
var timestampCmd = &cobra.Command{
	Use:   "timestamp <value>",
	Short: "Convert a Unix timestamp or ISO 8601 string to UTC and local time",
	Long: `Convert a time value between representations.

Accepts Unix seconds, Unix milliseconds (detected automatically for very
large values), or an ISO 8601 string; inputs without a timezone are
treated as UTC.

Examples:
  serialmon timestamp 1761660634.104
  serialmon timestamp 1672531200123
  serialmon timestamp 2025-10-26T14:10:34.104Z`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		result, err := timeconv.Parse(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Timestamp: %d\n", int64(result.Unix))
		fmt.Printf("UTC:       %s\n", result.UTC)
		fmt.Printf("Local:     %s\n", result.Local)
	},
}

func init() {
	rootCmd.AddCommand(timestampCmd)
}
