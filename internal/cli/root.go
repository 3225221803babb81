// Package cli implements the sitegen command line tool.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"sitegen_server/config"
	"sitegen_server/internal/store"
	"sitegen_server/internal/types"
	"sitegen_server/internal/validate"
)

type rootOptions struct {
	configDir string
	cfg       config.Config
}

// NewRootCmd builds the command tree. Each call returns independent state.
func NewRootCmd() *cobra.Command {
	ro := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "sitegen",
		Short: "Turn a one-line description into a validated site configuration",
		Long: `sitegen classifies a free-text prompt, builds a site configuration for it,
and checks the result for schema, content and security problems before
anything is written.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(ro.configDir)
			if err != nil {
				return err
			}
			ro.cfg = cfg
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&ro.configDir, "config-dir", ".", "directory containing config.yaml")

	rootCmd.AddCommand(
		newGenerateCmd(ro),
		newValidateCmd(ro),
		newSanitizeCmd(ro),
		newRefineCmd(ro),
		newTypesCmd(),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// writeConfig writes cfg to path, or to w as JSON (YAML when asYAML) when
// path is empty.
func writeConfig(w io.Writer, path string, cfg *types.SiteConfiguration, asYAML bool) error {
	if path != "" {
		return store.WriteFile(path, cfg)
	}
	if asYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(cfg)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// reportRejected prints a rejection report and returns err, joined with any
// failure to print it.
func reportRejected(w io.Writer, report validate.Report, err error) error {
	if perr := printJSON(w, report); perr != nil {
		return errors.Join(err, fmt.Errorf("failed to print report: %w", perr))
	}
	return err
}

func printWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintln(w, "warning:", msg)
	}
}
