/*
Copyright © 2025 Erik Wahlström <erik@embeddedtools.io>
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/embeddedtools/serialmon/internal/monitor"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// monitorCmd represents the monitor command
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Monitor a serial port with automatic reconnection",
	Long: `Monitor a serial port, printing every line it produces.

The monitor reconnects automatically when the device disappears (for
example across a USB unplug/replug), showing an in-place waiting indicator
until the port opens again. Lines can be prefixed with a capture timestamp
and appended to a per-run log file with terminal colors stripped.

Port names may be given as bare suffixes: "ACM0" resolves to /dev/ttyACM0.

Examples:
  serialmon monitor -p ACM0
  serialmon monitor -p USB0 -b 2000000 --print-time dt
  serialmon monitor -p ACM0 -l --log-file bringup --log-directory /var/log/bringup
  serialmon monitor -p ACM0 --highlight error,panic -c

Press Ctrl+C to stop; interrupting the monitor is a clean exit.`,
	Run: func(cmd *cobra.Command, args []string) {
		device := resolvePortPath(viper.GetString("port"))
		baud := viper.GetInt("baud")

		mode, err := monitor.ParseTimeMode(viper.GetString("print-time"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		var highlight []string
		if terms := viper.GetString("highlight"); terms != "" {
			highlight = strings.Split(terms, ",")
		}

		if viper.GetBool("clear") {
			termenv.ClearScreen()
		}

		// Log setup failures are fatal: the user asked for durable logging.
		var logFile *os.File
		if viper.GetBool("log") {
			logFile, err = monitor.OpenLog(
				viper.GetString("log-directory"),
				viper.GetString("log-file"),
				time.Now(),
			)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			defer logFile.Close()
			fmt.Printf("Logging to %s\n", logFile.Name())
		}

		fmt.Printf("This session: Port: %s %d\n", device, baud)
		fmt.Println("----------------------------------------")

		ctx, stop := signal.NotifyContext(context.Background(),
			os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg := monitor.Config{
			Target: monitor.Target{
				Device:      device,
				BaudRate:    baud,
				ReadTimeout: monitor.DefaultReadTimeout,
			},
		}

		var logWriter io.Writer
		if logFile != nil {
			logWriter = logFile
		}
		sink := monitor.NewSink(mode, os.Stdout, logWriter, highlight)
		sup := monitor.NewSupervisor(cfg, nil, sink, os.Stdout)

		// Run absorbs transient failures; it returns on interrupt, or with
		// an error when the terminal or log file stops accepting writes.
		if err := sup.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)

	monitorCmd.Flags().StringP("port", "p", "ACM0",
		"Serial port to connect to, e.g. ACM0, USB0, /dev/ttyS1")
	monitorCmd.Flags().IntP("baud", "b", 115200, "Baud rate")
	monitorCmd.Flags().BoolP("log", "l", false, "Append captured lines to a log file")
	monitorCmd.Flags().String("log-file", "", "Base name for the log file")
	monitorCmd.Flags().String("log-directory", "", "Directory for log files")
	monitorCmd.Flags().BoolP("clear", "c", false, "Clear the terminal before starting")
	monitorCmd.Flags().String("print-time", "off",
		"Timestamp prefix mode: off, epoch, ms, dt")
	monitorCmd.Flags().String("highlight", "",
		"Comma-separated terms to highlight in the live display")

	viper.BindPFlag("port", monitorCmd.Flags().Lookup("port"))
	viper.BindPFlag("baud", monitorCmd.Flags().Lookup("baud"))
	viper.BindPFlag("log", monitorCmd.Flags().Lookup("log"))
	viper.BindPFlag("log-file", monitorCmd.Flags().Lookup("log-file"))
	viper.BindPFlag("log-directory", monitorCmd.Flags().Lookup("log-directory"))
	viper.BindPFlag("clear", monitorCmd.Flags().Lookup("clear"))
	viper.BindPFlag("print-time", monitorCmd.Flags().Lookup("print-time"))
	viper.BindPFlag("highlight", monitorCmd.Flags().Lookup("highlight"))
}

// resolvePortPath expands a bare port name like "ACM0" to its /dev path.
// Absolute paths pass through untouched.
func resolvePortPath(port string) string {
	switch {
	case strings.HasPrefix(port, "/"):
		return port
	case strings.HasPrefix(port, "tty"):
		return "/dev/" + port
	default:
		return "/dev/tty" + port
	}
}
