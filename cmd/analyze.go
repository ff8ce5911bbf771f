package cmd

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"analysis-web/logger"
	"analysis-web/views"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text...]",
	Short: "Analyze text and print the result",
	Long:  `Analyze the given text, or standard input when no text is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if len(args) == 0 {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			text = string(data)
		}

		printer, err := newPrinter(cmd)
		if err != nil {
			return err
		}

		analyzer := views.NewAnalyzer(newClient(), logger.Log)
		analyzer.OnChange(func(s views.AnalyzerState) {
			if s.Status == views.StatusLoading {
				printer.Busy(views.RenderAnalyzer(s, views.DefaultLocale()).SubmitLabel)
			}
		})
		analyzer.SetText(text)

		state := analyzer.Submit(cmd.Context())
		printer.Analyzer(views.RenderAnalyzer(state, views.DefaultLocale()))
		if state.Status == views.StatusError {
			return ErrViewFailed
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
