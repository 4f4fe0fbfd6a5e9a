package cmd

import (
	"github.com/arboclima/arboclima/internal/contract"
	"github.com/arboclima/arboclima/internal/iocache"
	"github.com/arboclima/arboclima/internal/mcp"
	"github.com/arboclima/arboclima/internal/session"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Arboclima MCP server",
	Long:  `Launch an MCP server that allows AI agents to run lagged correlation analyses via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Suppress the normal header logs when running in MCP mode
		// to avoid polluting stdio which is used for the protocol.
		return mcpSetup(cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		cache := iocache.NewArtifactCache(iocache.Manager.GetResultStore())
		sess, err := session.New(cfg.DataDir, cache)
		if err != nil {
			return err
		}
		return mcp.StartMCPServer(rootCtx, cfg, sess)
	},
}

// mcpSetup is sharedSetup minus the strict request validation: the MCP
// client supplies the analysis tuple per call, so only the data
// directory and cache backend need to be resolved up front.
func mcpSetup(_ *cobra.Command, _ []string) error {
	if err := cacheSetup(); err != nil {
		return err
	}

	cfg.DataDir = viper.GetString("data-dir")
	if cfg.DataDir == "" {
		cfg.DataDir = contract.DefaultDataDir
	}
	cfg.LagMin = contract.DefaultLagMin
	cfg.LagMax = contract.DefaultLagMax
	cfg.Precision = contract.DefaultPrecision

	return nil
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
