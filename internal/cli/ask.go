package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/vidqa/internal/models"
	"github.com/raphaelgruber/vidqa/internal/service"
	"github.com/raphaelgruber/vidqa/internal/transcript"
	"github.com/raphaelgruber/vidqa/internal/youtube"
)

var (
	askTranscript string
	askTimeout    time.Duration
	askCitations  int
	askShowQuery  bool
)

var askCmd = &cobra.Command{
	Use:   "ask <video> <question>",
	Short: "Ask one question about a video",
	Long: `Ask a question about a video and get an answer grounded in its transcript.

The video must be indexed (see 'vidqa ingest'), or its transcript must be
available in VIDQA_TRANSCRIPT_DIR or given with --transcript.

Examples:
  vidqa ask dQw4w9WgXcQ "What is the pricing?"
  vidqa ask https://youtu.be/dQw4w9WgXcQ "Summarize the video"
  vidqa ask dQw4w9WgXcQ "Why does it matter?" --transcript ./talk.yaml`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askTranscript, "transcript", "t", "", "transcript file to index before asking")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 2*time.Minute, "deadline for retrieval and generation")
	askCmd.Flags().IntVarP(&askCitations, "citations", "n", defaultCitations, "max citation links to print")
	askCmd.Flags().BoolVar(&askShowQuery, "show-query", false, "print the query used for retrieval")
}

func runAsk(cmd *cobra.Command, args []string) error {
	videoID, err := youtube.ExtractVideoID(args[0])
	if err != nil {
		return err
	}
	question := strings.Join(args[1:], " ")

	if err := prepareVideo(cmd.Context(), videoID, askTranscript); err != nil {
		return err
	}

	answerer, err := application.Answerer(videoID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), askTimeout)
	defer cancel()

	ans, err := answerer.Answer(ctx, question, nil)
	if err != nil {
		return fmt.Errorf("answer: %w", err)
	}

	out := cmd.OutOrStdout()
	if askShowQuery {
		fmt.Fprintln(out, defaultTheme.hintStyle().Render(fmt.Sprintf("[%s] %s", ans.Category, ans.Query)))
	}
	printAnswer(out, defaultTheme, videoID, ans, askCitations)
	return nil
}

// prepareVideo makes sure videoID is indexed, from path when given and from
// the transcript directory otherwise.
func prepareVideo(ctx context.Context, videoID, path string) error {
	if path != "" {
		spans, err := transcript.Load(path)
		if err != nil {
			return fmt.Errorf("load transcript: %w", err)
		}
		_, err = application.Ingest.Ingest(ctx, videoID, spans, nil)
		return err
	}

	_, err := application.Ingest.EnsureIndexed(ctx, videoID, application.Source, false, nil)
	if err != nil {
		return fmt.Errorf("video %s is not indexed: %w", videoID, err)
	}
	return nil
}

// answerer is the part of service.Answerer used by the interactive commands.
type answerer interface {
	Answer(ctx context.Context, question string, history []models.ConversationTurn) (*service.Answer, error)
}
