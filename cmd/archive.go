/*
Copyright © 2025 Erik Wahlström <erik@embeddedtools.io>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/embeddedtools/serialmon/internal/archive"
	"github.com/spf13/cobra"
)

// archiveCmd represents the archive command
var archiveCmd = &cobra.Command{
	Use:   "archive [directory]",
	Short: "Zip a log directory and delete the original",
	Long: `Archive a log directory into a timestamped zip file in its parent
directory, then delete the original. Defaults to "logs" in the current
working directory.

If archiving fails for any reason the original directory is left in place.

Examples:
  serialmon archive
  serialmon archive /var/log/bringup`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "logs"
		if len(args) == 1 {
			dir = args[0]
		}
		if !filepath.IsAbs(dir) {
			cwd, err := os.Getwd()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			dir = filepath.Join(cwd, dir)
		}

		archivePath, err := archive.Cleanup(dir, time.Now())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Archived %s to %s\n", dir, archivePath)
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
}
