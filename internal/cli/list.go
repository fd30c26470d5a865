package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/vidqa/internal/youtube"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed videos",
	Long: `List indexed videos with their chunk counts.

Examples:
  vidqa list
  vidqa list --store memory`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	videos, err := application.Index.ListVideos(cmd.Context())
	if err != nil {
		return fmt.Errorf("list videos: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(videos) == 0 {
		fmt.Fprintln(out, "No videos indexed. Use 'vidqa ingest' to add one.")
		return nil
	}

	fmt.Fprintf(out, "Videos (%d):\n\n", len(videos))
	for _, v := range videos {
		fmt.Fprintf(out, "- %s (%d chunks)\n", v.VideoID, v.Chunks)
		fmt.Fprintf(out, "  %s\n", youtube.WatchURL(v.VideoID, 0))
	}
	return nil
}
