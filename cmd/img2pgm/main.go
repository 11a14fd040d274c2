// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the img2pgm CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/img2pgm/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd converts the image named by its first argument. Subcommands
// (version, journal) take precedence over an image of the same name;
// prefix such a file with ./ to convert it.
var rootCmd = &cobra.Command{
	Use:   "img2pgm [image-file]",
	Short: "Convert a raster image to a grayscale PGM file",
	Long: `img2pgm decodes an image (PNG, JPEG, GIF, BMP, TIFF, WebP or PNM),
converts it to 8-bit luminance and writes it as a PGM file next to the
input, replacing the input's extension with .pgm.

Without an argument it prints a usage line and exits successfully.`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./img2pgm.yaml or ~/.config/img2pgm/config.yaml)")
	rootCmd.PersistentFlags().String("luma", string(types.LumaRec601), "grayscale weighting: rec601 or bild")
	rootCmd.PersistentFlags().String("journal", "", "SQLite file recording each conversion (empty disables)")

	bindConfig()
}

// bindConfig ties viper keys to the persistent flags and sets defaults.
func bindConfig() {
	viper.BindPFlag("luma", rootCmd.PersistentFlags().Lookup("luma"))
	viper.BindPFlag("journal", rootCmd.PersistentFlags().Lookup("journal"))
	viper.SetDefault("max_results", 20)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("img2pgm")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "img2pgm"))
		}
	}

	viper.SetEnvPrefix("IMG2PGM")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// converterConfig assembles the run settings from flags, environment and
// config file, in viper's precedence order.
func converterConfig() types.ConverterConfig {
	return types.ConverterConfig{
		Luma: types.LumaPolicy(viper.GetString("luma")),
		Journal: types.JournalConfig{
			Path:       viper.GetString("journal"),
			MaxResults: viper.GetInt("max_results"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
