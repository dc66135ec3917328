package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-rootbrowse/pkg/render"
	"github.com/mattsolo1/grove-rootbrowse/pkg/service"
)

func NewTreeCmd(svc **service.Service) *cobra.Command {
	var (
		format  string
		depth   int
		noLinks bool
	)

	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the structure of a ROOT file",
		Long: `Print the directories, trees, branches and histograms of a ROOT file
as a tree.

Examples:
  rootbrowse tree run.root              # Whole file
  rootbrowse tree run.root --depth 1    # Top level only
  rootbrowse tree run.root -f json      # Machine readable`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			if format == "" {
				format = s.Config.Format
			}
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			root, err := s.Tree(args[0], depth)
			if err != nil {
				s.Logger.WithField("file", args[0]).WithError(err).Debug("tree failed")
				return err
			}

			opts := render.Options{Links: s.Config.Links && !noLinks}
			return render.Write(cmd.OutOrStdout(), root, f, opts)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json or yaml (default from config)")
	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "Maximum depth to descend (0 = unlimited)")
	cmd.Flags().BoolVar(&noLinks, "no-links", false, "Do not emit terminal hyperlinks")

	return cmd
}
