package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/chrisdamba/foodvenues/internal/models"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "foodvenues",
	Short: "Cleans and summarizes the Moscow food venues dataset",
	Long: `foodvenues is a CLI tool that cleans a table of food venues (normalized names,
street names, 24/7 flags and point estimates of the average bill and cappuccino
price), writes the result to files, databases or Kafka, and prints market
overview reports.`,
	SilenceUsage: true,
}

// persistentKeys maps config keys to root flags.
var persistentKeys = map[string]string{
	"input_path":    "input",
	"csv_delimiter": "delimiter",
	"log_level":     "log-level",
	"progress":      "progress",
}

func init() {
	cobra.OnInitialize(initConfig)
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.foodvenues.yaml)")
	flags.String("input", "", "Input CSV with the raw venues table")
	flags.String("delimiter", ",", "Input CSV delimiter")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.Bool("progress", true, "Show a progress bar")

	rootCmd.AddCommand(cleanCmd, reportCmd, generateCmd)
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Error loading .env file:", err)
	}

	if cfgFile == "" {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".foodvenues")
	}
}

// loadConfig binds the running command's flags and decodes the configuration.
// Bindings must happen here: several commands share keys.
func loadConfig(cmd *cobra.Command, keys map[string]string) (*models.Config, error) {
	v := viper.GetViper()
	if err := bindFlags(v, cmd.Flags(), persistentKeys); err != nil {
		return nil, err
	}
	if err := bindFlags(v, cmd.Flags(), keys); err != nil {
		return nil, err
	}
	cfg, err := models.LoadConfig(v, cfgFile)
	if err != nil {
		return nil, err
	}
	if used := v.ConfigFileUsed(); used != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}
	return cfg, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		f := flags.Lookup(name)
		if f == nil {
			return fmt.Errorf("flag --%s is not defined", name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
