package main

import (
	"fmt"

	"github.com/qiita-spots/qtp-diversity/internal/plugin"
	"github.com/spf13/cobra"
)

// describeCmd prints the plugin registration descriptor
var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print the plugin descriptor (artifact type registrations)",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := plugin.NewDescriptor(cfg).YAML()
		if err != nil {
			return fmt.Errorf("error rendering descriptor: %w", err)
		}
		fmt.Print(out)
		return nil
	},
}
