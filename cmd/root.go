/*
Copyright © 2025 Erik Wahlström <erik@embeddedtools.io>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "serialmon",
	Short: "Resilient serial-port monitor for embedded bring-up",
	Long: `serialmon monitors a serial device, printing and optionally logging
every line it produces, and automatically recovers from transient
disconnections such as a USB unplug/replug.

Defaults for baud rate, timestamp mode, and log directory can be set in
$HOME/.serialmon.yaml or via SERIALMON_* environment variables; flags
always win.`,
}

// Execute adds all child commands to the root command and sets the flags
// appropriately. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.serialmon.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".serialmon")
	}

	viper.SetDefault("baud", 115200)
	viper.SetDefault("print-time", "off")
	viper.SetDefault("log-directory", defaultLogDirectory())

	viper.SetEnvPrefix("serialmon")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// defaultLogDirectory is a logs/ directory next to the executable, which is
// where field operators expect captures to accumulate.
func defaultLogDirectory() string {
	exe, err := os.Executable()
	if err != nil {
		return "logs"
	}
	return filepath.Join(filepath.Dir(exe), "logs")
}
