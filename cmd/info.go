/*
Copyright © 2025 Erik Wahlström <erik@embeddedtools.io>
*/
package cmd

import (
	"fmt"
	"os"

	serial "github.com/embeddedtools/serialmon"
	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <port>",
	Short: "Display detailed information about a serial port",
	Long: `Display detailed information about a serial port including USB metadata.

Examples:
  serialmon info /dev/ttyUSB0
  serialmon info /dev/ttyACM0

For USB devices, vendor/product IDs and serial numbers are read from sysfs
when available.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		portPath := args[0]

		info, err := serial.GetPortInfo(portPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting port info: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Port Information: %s\n\n", info.Path)
		fmt.Printf("  Name:        %s\n", info.Name)
		fmt.Printf("  Description: %s\n", info.Description)

		if info.VendorID != "" || info.ProductID != "" {
			fmt.Println("\nUSB Device Information:")
			if info.VendorID != "" {
				fmt.Printf("  Vendor ID:  %s\n", info.VendorID)
			}
			if info.ProductID != "" {
				fmt.Printf("  Product ID: %s\n", info.ProductID)
			}
			if info.SerialNumber != "" {
				fmt.Printf("  Serial:     %s\n", info.SerialNumber)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
