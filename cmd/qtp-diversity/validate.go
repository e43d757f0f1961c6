package main

import (
	"encoding/json"
	"fmt"

	"github.com/qiita-spots/qtp-diversity/internal/formatter"
	"github.com/qiita-spots/qtp-diversity/internal/plugin"
	"github.com/qiita-spots/qtp-diversity/internal/qiita"
	"github.com/qiita-spots/qtp-diversity/internal/types"
	"github.com/spf13/cobra"
)

var (
	validateType     string
	validateFiles    string
	validateTemplate string
	validateAnalysis string
	validateOutDir   string
	validateOutput   string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a diversity artifact against the sample metadata",
	Long: `Validate that a newly produced artifact is structurally complete and
consistent with the experiment's sample metadata.

Examples:
  # Validate a distance matrix against a prep template
  qtp-diversity validate -t distance_matrix --files '{"plain_text": ["dm.txt"]}' --template 1 --out-dir ./job-out

  # Validate an alpha diversity vector against an analysis
  qtp-diversity validate -t alpha_vector --files '{"plain_text": ["alpha.txt"]}' --analysis 3 --out-dir ./job-out

  # Validate a legacy QIIME1 directory artifact
  qtp-diversity validate -t taxa_summary --files '{"directory": ["./taxa_summary"]}' --analysis 3 --out-dir ./job-out`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var files types.FileGroup
		if err := json.Unmarshal([]byte(validateFiles), &files); err != nil {
			return fmt.Errorf("error parsing --files: %w", err)
		}

		params := plugin.Parameters{
			PrepTemplate: validateTemplate,
			Analysis:     validateAnalysis,
			ArtifactType: types.ArtifactType(validateType),
			Files:        files,
		}

		p := plugin.New(cfg, qiita.NewClient(cfg))
		result, err := p.Validate(cmd.Context(), params, validateOutDir)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		f, err := formatter.New(formatter.Type(validateOutput))
		if err != nil {
			return err
		}
		out, err := f.Format(result)
		if err != nil {
			return err
		}
		fmt.Print(out)

		if !result.Success {
			return fmt.Errorf("validation failed: %s", result.Error)
		}
		return nil
	},
}

func init() {
	flags := validateCmd.Flags()
	flags.StringVarP(&validateType, "type", "t", "", "artifact type tag (required)")
	flags.StringVar(&validateFiles, "files", "", "JSON mapping of file role to paths (required)")
	flags.StringVar(&validateTemplate, "template", "", "prep template id supplying the sample metadata")
	flags.StringVar(&validateAnalysis, "analysis", "", "analysis id supplying the sample metadata")
	flags.StringVar(&validateOutDir, "out-dir", ".", "job scratch output directory")
	flags.StringVarP(&validateOutput, "output", "o", "table", "output format (table, json, yaml)")

	if err := validateCmd.MarkFlagRequired("type"); err != nil {
		panic(fmt.Sprintf("failed to mark flag required: %v", err))
	}
	if err := validateCmd.MarkFlagRequired("files"); err != nil {
		panic(fmt.Sprintf("failed to mark flag required: %v", err))
	}
}
