package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mattsolo1/grove-rootbrowse/pkg/history"
	"github.com/mattsolo1/grove-rootbrowse/pkg/service"
)

func NewHistoryCmd(svc **service.Service) *cobra.Command {
	var (
		limit    int
		jsonOut  bool
		clearAll bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently browsed files",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			store, err := s.OpenHistory()
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			if clearAll {
				if err := store.Clear(); err != nil {
					return fmt.Errorf("clear history: %w", err)
				}
				s.Logger.Debug("history cleared")
				return nil
			}

			if !cmd.Flags().Changed("limit") {
				limit = s.Config.HistoryLimit
			}
			entries, err := store.List(limit)
			if err != nil {
				return fmt.Errorf("list history: %w", err)
			}

			if jsonOut {
				return outputJSON(cmd.OutOrStdout(), entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No files browsed yet")
				return nil
			}
			printHistoryTable(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries (0 = all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Forget all browsed files")

	return cmd
}

func printHistoryTable(out io.Writer, entries []*history.Entry) {
	p := message.NewPrinter(language.English)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "LAST OPENED\tOPENS\tNODES\tPATH")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			e.LastOpened.Local().Format("2006-01-02 15:04"),
			p.Sprintf("%d", e.OpenCount),
			p.Sprintf("%d", e.Nodes),
			e.Path,
		)
	}

	w.Flush()
}

func outputJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
