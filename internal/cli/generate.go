package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sitegen_server/internal/app"
	"sitegen_server/internal/extract"
	"sitegen_server/internal/pages"
	"sitegen_server/internal/validate"
)

type generateOptions struct {
	maxFeatures  int
	businessType string
	sanitize     bool
	out          string
	pagesDir     string
	format       string
}

func newGenerateCmd(ro *rootOptions) *cobra.Command {
	o := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate <prompt>",
		Short: "Generate a site configuration from a prompt",
		Long: `generate runs the configured generator over the prompt, optionally
sanitizes the output, and validates it. A rejected configuration prints its
report and is never written.`,
		Example: `  sitegen generate "Create a portfolio site for Creative Studio with a contact page"
  sitegen generate --type legal --out site.yaml "A website for Northwind"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, ro, o, strings.Join(args, " "))
		},
	}
	cmd.Flags().IntVar(&o.maxFeatures, "max-features", 0, "number of home page features (default from MAX_FEATURES)")
	cmd.Flags().StringVar(&o.businessType, "type", "", "business type override, e.g. legal or restaurant")
	cmd.Flags().BoolVar(&o.sanitize, "sanitize", false, "sanitize the output before validation")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "write the configuration to this .json or .yaml file")
	cmd.Flags().StringVar(&o.pagesDir, "pages-dir", "", "also write one file per page into this directory")
	cmd.Flags().StringVar(&o.format, "format", "json", "page and stdout format: json or yaml")
	return cmd
}

func runGenerate(cmd *cobra.Command, ro *rootOptions, o *generateOptions, prompt string) error {
	renderer, err := pages.RendererFor(o.format)
	if err != nil {
		return err
	}

	runOpts := app.PipelineRunDefaults(ro.cfg)
	runOpts.Sanitize = o.sanitize
	if o.maxFeatures != 0 {
		runOpts.MaxFeatures = o.maxFeatures
	}
	if o.businessType != "" {
		bt, err := extract.ResolveBusinessType(o.businessType)
		if err != nil {
			return err
		}
		runOpts.BusinessType = bt
	}

	p, _, err := app.NewPipeline(cmd.Context(), ro.cfg)
	if err != nil {
		return err
	}
	res, err := p.Run(cmd.Context(), prompt, runOpts)
	var rejected *validate.RejectedError
	if errors.As(err, &rejected) {
		return reportRejected(cmd.ErrOrStderr(), rejected.Report, err)
	}
	if err != nil {
		return err
	}
	printWarnings(cmd.ErrOrStderr(), res.Report.Warnings)
	if res.FellBack {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s failed, used the heuristic generator\n", p.GeneratorName())
	}

	if err := writeConfig(cmd.OutOrStdout(), o.out, res.Config, renderer.Type() == "yaml"); err != nil {
		return err
	}
	if o.out != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (run %s)\n", o.out, res.RunID)
	}

	if o.pagesDir != "" {
		files, err := pages.Materialize(o.pagesDir, res.Config, renderer)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", f.Filename, f.Size)
		}
	}
	return nil
}
