package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/vidqa/internal/service"
	"github.com/raphaelgruber/vidqa/internal/transcript"
	"github.com/raphaelgruber/vidqa/internal/youtube"
)

var ingestForce bool

var ingestCmd = &cobra.Command{
	Use:   "ingest <video> [transcript-file]",
	Short: "Index a video transcript",
	Long: `Index a video transcript for question answering.

The transcript is a JSON or YAML list of {text, start, duration} spans. Without
a file argument, <video_id>.json, .yaml or .yml is read from VIDQA_TRANSCRIPT_DIR.
Videos that are already indexed are skipped unless --force is given; a file
argument always re-indexes.

Examples:
  vidqa ingest https://www.youtube.com/watch?v=dQw4w9WgXcQ ./dQw4w9WgXcQ.json
  vidqa ingest dQw4w9WgXcQ
  vidqa ingest dQw4w9WgXcQ --force`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runIngestCmd,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestForce, "force", "f", false, "re-index even when already indexed")
}

func runIngestCmd(cmd *cobra.Command, args []string) error {
	videoID, err := youtube.ExtractVideoID(args[0])
	if err != nil {
		return err
	}

	fn := func(ctx context.Context, progress service.ProgressFunc) (*service.IngestResult, error) {
		return application.Ingest.EnsureIndexed(ctx, videoID, application.Source, ingestForce, progress)
	}
	if len(args) == 2 {
		spans, err := transcript.Load(args[1])
		if err != nil {
			return fmt.Errorf("load transcript: %w", err)
		}
		fn = func(ctx context.Context, progress service.ProgressFunc) (*service.IngestResult, error) {
			return application.Ingest.Ingest(ctx, videoID, spans, progress)
		}
	}

	_, err = runIngest(cmd.Context(), cmd.OutOrStdout(), videoID, fn)
	return err
}
