package cmd

import (
	"github.com/spf13/cobra"

	"analysis-web/logger"
	"analysis-web/views"
)

var searchCmd = &cobra.Command{
	Use:   "search [topic]",
	Short: "List stored analyses, optionally filtered by topic or keyword",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		printer, err := newPrinter(cmd)
		if err != nil {
			return err
		}

		search := views.NewSearch(newClient(), logger.Log)
		search.OnChange(func(s views.SearchState) {
			if s.Status == views.StatusLoading {
				printer.Busy(views.RenderSearch(s, views.DefaultLocale()).SubmitLabel)
			}
		})

		var state views.SearchState
		if len(args) == 1 {
			search.SetTerm(args[0])
			state = search.SubmitSearch(cmd.Context())
		} else {
			state = search.Mount(cmd.Context())
		}

		if err := printer.Search(views.RenderSearch(state, views.DefaultLocale())); err != nil {
			return err
		}
		if state.Status == views.StatusError {
			return ErrViewFailed
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
