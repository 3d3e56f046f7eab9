// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the edi-fetch CLI, which downloads an
// EDI data package archive from PASTA given its DOI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/edi-fetch/internal/pasta"
	"github.com/pdiddy/edi-fetch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const defaultOut = "data/edi_package.zip"

// logger writes diagnostics to stderr. It is configured in PersistentPreRunE.
var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "edi-fetch"})

// rootCmd resolves a DOI and downloads the package archive.
var rootCmd = &cobra.Command{
	Use:   "edi-fetch --doi <doi> [--out path]",
	Short: "Download an EDI data package archive by DOI",
	Long: `edi-fetch resolves an EDI DOI (10.6073/pasta/<md5>) on a PASTA repository
to its package scope, identifier and revision, requests a ZIP archive of the
package, and streams it to a local file.

The DOI may be given bare or prefixed with https://doi.org/ or doi:.`,
	Example:      "  edi-fetch --doi 10.6073/pasta/7ac5818bb45bb42c2d935ce7e3756c00 --out data/edi_package.zip",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetOutput(cmd.ErrOrStderr())
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger.SetLevel(log.DebugLevel)
		} else {
			logger.SetLevel(log.InfoLevel)
		}
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("using config file", "path", f)
		}
		return nil
	},
	RunE: runFetch,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./edi-fetch.yaml or ~/.config/edi-fetch/edi-fetch.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log requests and responses to stderr")

	rootCmd.Flags().String("doi", "", "DOI like 10.6073/pasta/<md5>, optionally prefixed with https://doi.org/ or doi:")
	rootCmd.Flags().String("out", defaultOut, "output ZIP path")
	rootCmd.Flags().Bool("record", false, "write a YAML package record next to the archive (<out>.yaml)")
	_ = rootCmd.MarkFlagRequired("doi")
	_ = viper.BindPFlag("out", rootCmd.Flags().Lookup("out"))

	viper.SetDefault("base_url", pasta.DefaultBaseURL)
	viper.SetDefault("user_agent", pasta.DefaultUserAgent)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")

	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "edi-fetch"))
	}

	if err := readConfig(viper.GetViper(), cfgFile, paths...); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}

// readConfig loads cfgFile, or edi-fetch.yaml from the first of paths that
// has one. A missing default config is not an error; a config that exists
// but cannot be read or parsed is, as is a missing explicit cfgFile.
func readConfig(v *viper.Viper, cfgFile string, paths ...string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("edi-fetch")
		v.SetConfigType("yaml")
		for _, p := range paths {
			v.AddConfigPath(p)
		}
	}

	v.SetEnvPrefix("EDI_FETCH")
	v.AutomaticEnv()

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err == nil || errors.As(err, &notFound) {
		return nil
	}
	if f := v.ConfigFileUsed(); f != "" {
		return fmt.Errorf("reading config %s: %w", f, err)
	}
	return fmt.Errorf("reading config: %w", err)
}

func runFetch(cmd *cobra.Command, args []string) error {
	doi, _ := cmd.Flags().GetString("doi")
	record, _ := cmd.Flags().GetBool("record")
	out := viper.GetString("out")
	if out == "" {
		out = defaultOut
	}

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			BaseURL:   viper.GetString("base_url"),
			UserAgent: viper.GetString("user_agent"),
		},
	}
	client := pasta.New(cfg, logger)
	logger.Debug("fetching package", "doi", doi, "base_url", client.BaseURL(), "out", out)

	rec, err := client.Fetch(cmd.Context(), doi, out, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if record {
		path := pasta.RecordPath(rec.Path)
		if err := pasta.WriteRecord(rec, path); err != nil {
			return err
		}
		logger.Info("wrote package record", "path", path)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
