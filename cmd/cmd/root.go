// Package cmd wires the CLI commands together.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"redlens/internal/config"
	"redlens/internal/logger"
)

var cfgFile string

// rootCmd represents the base command when called without any
// subcommands.
var rootCmd = &cobra.Command{
	Use:   "redlens",
	Short: "redlens analyzes subreddit discussions into product-insight reports",
	Long: `redlens fetches recent posts from a subreddit, scores their sentiment,
extracts recurring product themes, ranks high-impact issues, and writes a
product-insight report in markdown. Optionally, a generative model enriches
the summary and insights; the deterministic pipeline always runs regardless.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(viper.GetString("logging.level"), viper.GetString("logging.format"))
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.redlens.yaml or $HOME/.redlens.yaml)")
}

// initConfig reads the .env file, the config file and environment
// variables into viper.
func initConfig() {
	// Load .env if present, for local development.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".redlens")
	}

	viper.AutomaticEnv()
	config.SetDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
