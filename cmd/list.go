/*
Copyright © 2025 Erik Wahlström <erik@embeddedtools.io>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	serial "github.com/embeddedtools/serialmon"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available serial ports",
	Long: `List all available serial ports on the system.

Scans /dev for communication-capable serial devices (ttyUSB*, ttyACM*,
ttyS* and other platform-specific names). Virtual terminals and
pseudo-terminals are excluded.`,
	Run: func(cmd *cobra.Command, args []string) {
		ports, err := serial.ListPorts()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing ports: %v\n", err)
			os.Exit(1)
		}

		if len(ports) == 0 {
			fmt.Println("No serial ports found")
			return
		}

		verbose, _ := cmd.Flags().GetBool("verbose")

		headerStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))
		fmt.Println(headerStyle.Render(fmt.Sprintf("Serial ports (%d found):", len(ports))))

		for _, portPath := range ports {
			if !verbose {
				fmt.Printf("  %s\n", portPath)
				continue
			}

			info, err := serial.GetPortInfo(portPath)
			if err != nil {
				fmt.Printf("  %s\n", portPath)
				continue
			}
			fmt.Printf("  %-16s %s\n", portPath, info.Description)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("verbose", "v", false, "Show port descriptions")
}
