package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/vidqa/internal/metrics"
	"github.com/raphaelgruber/vidqa/internal/models"
	"github.com/raphaelgruber/vidqa/internal/youtube"
)

var (
	chatTranscript string
	chatTimeout    time.Duration
)

var chatCmd = &cobra.Command{
	Use:   "chat <video>",
	Short: "Chat about a video",
	Long: `Start an interactive conversation about a video.

Follow-up questions may refer to earlier turns ("and how much does it cost?").
The conversation lives only for this session.

Commands:
  /reset   forget the conversation so far
  /stats   show timings and token usage
  exit     leave the chat

Examples:
  vidqa chat dQw4w9WgXcQ
  vidqa chat https://youtu.be/dQw4w9WgXcQ --transcript ./talk.json`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatTranscript, "transcript", "t", "", "transcript file to index before chatting")
	chatCmd.Flags().DurationVar(&chatTimeout, "timeout", 2*time.Minute, "deadline per question")
}

func runChat(cmd *cobra.Command, args []string) error {
	videoID, err := youtube.ExtractVideoID(args[0])
	if err != nil {
		return err
	}
	if err := prepareVideo(cmd.Context(), videoID, chatTranscript); err != nil {
		return err
	}

	a, err := application.Answerer(videoID)
	if err != nil {
		return err
	}

	s := &chatSession{
		videoID:  videoID,
		answerer: a,
		metrics:  application.Metrics,
		timeout:  chatTimeout,
		theme:    defaultTheme,
	}
	return s.run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
}

// chatSession is one interactive conversation about a video. The history is
// owned by the session and only grows, until /reset.
type chatSession struct {
	videoID  string
	answerer answerer
	metrics  *metrics.Collector
	timeout  time.Duration
	theme    Theme
	history  []models.ConversationTurn
}

func (s *chatSession) run(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, s.theme.statusStyle().Render("Chatting about "+youtube.WatchURL(s.videoID, 0)))
	fmt.Fprintln(out, s.theme.hintStyle().Render("Type /reset, /stats or exit."))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, s.theme.statusStyle().Render("> "))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit", "/exit", "/quit":
			return nil
		case "/reset":
			s.history = nil
			fmt.Fprintln(out, s.theme.hintStyle().Render("Conversation cleared."))
			continue
		case "/stats":
			if s.metrics != nil {
				printStats(out, s.metrics.Snapshot())
			}
			continue
		}

		if err := s.ask(ctx, out, line); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintln(out, s.theme.errorStyle().Render("✗ "+err.Error()))
		}
	}
}

func (s *chatSession) ask(ctx context.Context, out io.Writer, question string) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	ans, err := s.answerer.Answer(ctx, question, s.history)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("timed out after %s", s.timeout)
		}
		return err
	}

	printAnswer(out, s.theme, s.videoID, ans, defaultCitations)
	fmt.Fprintln(out)

	s.history = append(s.history,
		models.ConversationTurn{Role: models.RoleUser, Content: question},
		models.ConversationTurn{Role: models.RoleAssistant, Content: ans.Text},
	)
	return nil
}
