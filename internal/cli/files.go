package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sitegen_server/internal/ai"
	"sitegen_server/internal/app"
	"sitegen_server/internal/sanitize"
	"sitegen_server/internal/store"
	"sitegen_server/internal/validate"
)

func newValidateCmd(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a configuration file (.json, .yaml or .yml)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.ReadFile(args[0])
			if err != nil {
				return err
			}
			report := validate.Validate(cfg)
			if err := printJSON(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			return report.Err()
		},
	}
}

type sanitizeOptions struct {
	out             string
	noExternalLinks bool
	allowDomains    []string
	maxURLLength    int
}

func newSanitizeCmd(ro *rootOptions) *cobra.Command {
	o := &sanitizeOptions{}
	cmd := &cobra.Command{
		Use:   "sanitize <file>",
		Short: "Strip unsafe content from a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.ReadFile(args[0])
			if err != nil {
				return err
			}
			opts := app.SanitizeOptions(ro.cfg)
			if o.noExternalLinks {
				opts.AllowExternalLinks = false
			}
			if len(o.allowDomains) > 0 {
				opts.AllowedDomains = o.allowDomains
			}
			if o.maxURLLength > 0 {
				opts.MaxURLLength = o.maxURLLength
			}

			res := sanitize.Sanitize(cfg, opts)
			printWarnings(cmd.ErrOrStderr(), res.Warnings)
			if err := writeConfig(cmd.OutOrStdout(), o.out, res.Sanitized, false); err != nil {
				return err
			}
			if o.out != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d changes)\n", o.out, len(res.Warnings))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "write the sanitized configuration to this file")
	cmd.Flags().BoolVar(&o.noExternalLinks, "no-external-links", false, "replace every external link")
	cmd.Flags().StringSliceVar(&o.allowDomains, "allow-domain", nil, "allow external links to this domain (repeatable)")
	cmd.Flags().IntVar(&o.maxURLLength, "max-url-length", 0, "truncate longer URLs")
	return cmd
}

type refineOptions struct {
	instruction string
	out         string
}

func newRefineCmd(ro *rootOptions) *cobra.Command {
	o := &refineOptions{}
	cmd := &cobra.Command{
		Use:   "refine <file>",
		Short: "Ask the OpenAI model to fix a configuration",
		Long: `refine sends the configuration and its validation report to the OpenAI
model, then sanitizes and validates the answer. The refined configuration is
written only when it passes validation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ro.cfg.OpenAIKey == "" {
				return errors.New("OPENAI_API_KEY is required for refine")
			}
			cfg, err := store.ReadFile(args[0])
			if err != nil {
				return err
			}
			report := validate.Validate(cfg)
			if report.Valid && len(report.Warnings) == 0 && o.instruction == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid, nothing to refine.")
				return nil
			}

			gen := ai.NewGenerator(ro.cfg.OpenAIKey, ro.cfg.OpenAIModel, 0)
			refined, err := gen.Refine(cmd.Context(), cfg, report, o.instruction)
			if err != nil {
				return err
			}
			sr := sanitize.Sanitize(refined, app.SanitizeOptions(ro.cfg))
			after := validate.Validate(sr.Sanitized)
			after.AddWarnings(sr.Warnings...)
			if !after.Valid {
				return reportRejected(cmd.ErrOrStderr(), after, after.Err())
			}
			printWarnings(cmd.ErrOrStderr(), after.Warnings)
			return writeConfig(cmd.OutOrStdout(), o.out, sr.Sanitized, false)
		},
	}
	cmd.Flags().StringVarP(&o.instruction, "instruction", "i", "", "extra instruction for the model")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "write the refined configuration to this file")
	return cmd
}
