package main

import (
	"fmt"

	"github.com/qiita-spots/qtp-diversity/internal/qiita"
	"github.com/spf13/cobra"
)

var (
	// Server flags
	serverHost string
	serverPort int
)

// serveCmd starts an in-memory host platform emulation for local plugin
// development
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a development host server emulating the Qiita endpoints",
	PreRun: func(cmd *cobra.Command, args []string) {
		// Override config values with flags if provided
		if cmd.Flags().Changed("host") {
			cfg.Server.Host = serverHost
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		return qiita.NewServer().Start(addr)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serverHost, "host", "H", "", "Server host (default: 0.0.0.0)")
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 0, "Server port (default: 8080)")
}
