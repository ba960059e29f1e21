/*
Copyright © 2026 Michael Putera Wardana <michaelputeraw@gmail.com>
*/
package cmd

import (
	"os"

	"github.com/krobus00/kite-order-cli/internal/bootstrap"
	"github.com/krobus00/kite-order-cli/internal/config"
	"github.com/krobus00/kite-order-cli/internal/constant"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var configPath string

// rootCmd represents the base command when called without any subcommands.
// Running the binary with no subcommand drops straight into the order menu.
var rootCmd = &cobra.Command{
	Use:   "kite-order-cli",
	Short: "Stage Zerodha Kite orders locally and submit them in one go",
	Long: `kite-order-cli keeps a local list of staged orders in a JSON file and,
on demand, logs in to the Kite web API (password + TOTP) and submits
every staged order sequentially, reporting the broker response per order.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}

		logrus.SetReportCaller(config.Env.Log.ShowCaller)

		if config.Env.Env == constant.ProductionEnvironment {
			logrus.SetFormatter(&logrus.JSONFormatter{})
		}

		logLevel, err := logrus.ParseLevel(config.Env.Log.LogLevel)
		if err != nil {
			return err
		}
		logrus.SetLevel(logLevel)

		return nil
	},
	Run: bootstrap.StartMenu,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: ./config.yml, optional)")
}
