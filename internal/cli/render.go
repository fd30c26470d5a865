package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/raphaelgruber/vidqa/internal/metrics"
	"github.com/raphaelgruber/vidqa/internal/prompts"
	"github.com/raphaelgruber/vidqa/internal/service"
	"github.com/raphaelgruber/vidqa/internal/youtube"
)

// defaultCitations is how many citation links are printed under an answer.
const defaultCitations = 3

// printAnswer writes the answer followed by up to maxCitations watch links.
func printAnswer(w io.Writer, theme Theme, videoID string, ans *service.Answer, maxCitations int) {
	if ans.Text == prompts.Refusal {
		fmt.Fprintln(w, theme.hintStyle().Render(ans.Text))
		return
	}
	fmt.Fprintln(w, ans.Text)

	if len(ans.Citations) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, theme.statusStyle().Render("Sources:"))
	for i, c := range ans.Citations {
		if i >= maxCitations {
			fmt.Fprintln(w, theme.hintStyle().Render(fmt.Sprintf("  ... and %d more", len(ans.Citations)-maxCitations)))
			break
		}
		fmt.Fprintf(w, "  %s %s\n",
			lipgloss.NewStyle().Bold(true).Render("["+c.Formatted+"]"),
			youtube.WatchURL(videoID, c.Seconds))
	}
}

// printStats displays in-memory answering statistics.
func printStats(w io.Writer, stats metrics.Snapshot) {
	fmt.Fprintf(w, "Statistics (in-memory, this session)\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════\n")
	fmt.Fprintf(w, "Uptime: %.1f seconds\n", stats.UptimeSeconds)

	if len(stats.Answers) > 0 {
		fmt.Fprintf(w, "\nAnswers:\n")
		for _, category := range []string{"factual", "deep", "summary"} {
			if n, ok := stats.Answers[category]; ok {
				fmt.Fprintf(w, "  %-8s %d\n", category, n)
			}
		}
	}

	sections := []struct {
		title  string
		op     *metrics.OperationSnapshot
		tokens bool
	}{
		{"Embeddings", stats.Embedding, false},
		{"Index Search", stats.IndexSearch, false},
		{"Retrieval", stats.Retrieval, false},
		{"Condense", stats.Condense, false},
		{"LLM Generate", stats.LLMGenerate, true},
	}
	for _, s := range sections {
		if s.op == nil {
			continue
		}
		fmt.Fprintf(w, "\n%s:\n", s.title)
		printOpStats(w, s.op)
		if s.tokens {
			printTokenStats(w, s.op)
		}
	}
}

// printOpStats displays timing statistics for an operation.
func printOpStats(w io.Writer, op *metrics.OperationSnapshot) {
	fmt.Fprintf(w, "  Calls: %d, Total: %dms\n", op.Count, op.TotalTimeMs)
	fmt.Fprintf(w, "  Time: avg %.1fms, min %dms, max %dms\n",
		op.AvgTimeMs, op.MinTimeMs, op.MaxTimeMs)
}

// printTokenStats displays token statistics if available.
func printTokenStats(w io.Writer, op *metrics.OperationSnapshot) {
	if op.TotalInputTokens == nil || op.TotalOutputTokens == nil {
		return
	}
	fmt.Fprintf(w, "  Tokens In:  %d total", *op.TotalInputTokens)
	if op.AvgInputTokens != nil {
		fmt.Fprintf(w, ", avg %.0f", *op.AvgInputTokens)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Tokens Out: %d total", *op.TotalOutputTokens)
	if op.AvgOutputTokens != nil {
		fmt.Fprintf(w, ", avg %.0f", *op.AvgOutputTokens)
	}
	fmt.Fprintln(w)
}
