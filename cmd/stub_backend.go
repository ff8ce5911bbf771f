package cmd

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"analysis-web/backend"
	"analysis-web/database"
	"analysis-web/logger"
)

var stubBackendCmd = &cobra.Command{
	Use:   "stub-backend",
	Short: "Run a local implementation of the analysis backend API",
	Long: `Run POST /analyze and GET /search backed by SQLite.

Analyses come from an OpenAI-compatible chat model when LLM_API_KEY is set,
otherwise from a built-in heuristic.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gin.SetMode(gin.ReleaseMode)

		db, err := database.Open(cfg.Stub.DBPath)
		if err != nil {
			return err
		}

		var analyzer backend.Analyzer = backend.HeuristicAnalyzer{}
		if cfg.Stub.LLM.APIKey != "" {
			analyzer = backend.NewLLMAnalyzer(cfg.Stub.LLM.BaseURL, cfg.Stub.LLM.APIKey, cfg.Stub.LLM.Model,
				backend.WithQPS(cfg.Stub.LLM.QPS))
			logger.Log.Infof("LLM analysis enabled with model %s", cfg.Stub.LLM.Model)
		}

		srv := backend.NewServer(backend.NewStore(db), analyzer, logger.Log)
		logger.Log.Infof("Starting stub analysis backend on %s", cfg.Stub.ListenAddr)
		return listenAndServe(cmd.Context(), cfg.Stub.ListenAddr, srv.Router())
	},
}

func init() {
	rootCmd.AddCommand(stubBackendCmd)
}
