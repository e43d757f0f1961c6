package main

import (
	"fmt"

	"github.com/qiita-spots/qtp-diversity/internal/plugin"
	"github.com/qiita-spots/qtp-diversity/internal/qiita"
	"github.com/spf13/cobra"
)

var (
	summarizeTemplate string
	summarizeAnalysis string
	summarizeOutDir   string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [artifact-id]",
	Short: "Generate and persist the HTML summary of an artifact",
	Long: `Generate the HTML summary of an existing artifact and persist its
location back to the artifact record on the host platform.

Examples:
  # Summarize artifact 42 using an analysis' metadata
  qtp-diversity summarize 42 --analysis 3 --out-dir ./job-out`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := plugin.Parameters{
			PrepTemplate: summarizeTemplate,
			Analysis:     summarizeAnalysis,
		}

		p := plugin.New(cfg, qiita.NewClient(cfg))
		result, err := p.GenerateHTMLSummary(cmd.Context(), args[0], params, summarizeOutDir)
		if err != nil {
			return fmt.Errorf("summary generation failed: %w", err)
		}
		if !result.Success {
			return fmt.Errorf("summary generation failed: %s", result.Error)
		}

		fmt.Printf("HTML summary generated for artifact %s\n", args[0])
		return nil
	},
}

func init() {
	flags := summarizeCmd.Flags()
	flags.StringVar(&summarizeTemplate, "template", "", "prep template id supplying the sample metadata")
	flags.StringVar(&summarizeAnalysis, "analysis", "", "analysis id supplying the sample metadata")
	flags.StringVar(&summarizeOutDir, "out-dir", ".", "job scratch output directory")
}
