package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/raphaelgruber/vidqa/internal/classify"
	"github.com/raphaelgruber/vidqa/internal/config"
	"github.com/raphaelgruber/vidqa/internal/metrics"
	"github.com/raphaelgruber/vidqa/internal/models"
	"github.com/raphaelgruber/vidqa/internal/prompts"
)

// Default retrieval sizes.
const (
	DefaultTopK     = 6
	DefaultDeepTopK = 12
	DefaultProbeK   = 5
)

// Answer is the result of one question.
type Answer struct {
	// Text is the model output, or prompts.Refusal when nothing was retrieved.
	Text string
	// Documents are the chunks that fed the prompt, in prompt order.
	Documents []models.Chunk
	// Citations are derived from Documents, ascending by second.
	Citations []models.Citation
	Category  classify.Category
	// Query is the text used for retrieval. It differs from the question only
	// when a follow-up was condensed.
	Query string
}

// AnswererConfig configures an Answerer. Zero values select defaults.
type AnswererConfig struct {
	Classifier classify.Classifier
	Library    *prompts.Library

	TopK     int
	DeepTopK int
	ProbeK   int
	Probes   []string

	// CondenseFallback answers with the original question when condensing
	// fails instead of failing the request.
	CondenseFallback bool

	Metrics *metrics.Collector
	Logger  *slog.Logger
}

// Answerer routes a question to a retrieval strategy, assembles a grounded
// prompt and asks the model.
type Answerer struct {
	retriever  Retriever
	completer  Completer
	classifier classify.Classifier
	library    *prompts.Library
	condenser  *Condenser

	topK             int
	deepTopK         int
	probeK           int
	probes           []string
	condenseFallback bool

	metrics *metrics.Collector
	logger  *slog.Logger
}

// NewAnswerer creates an answerer over a retriever and a completer.
func NewAnswerer(retriever Retriever, completer Completer, cfg AnswererConfig) (*Answerer, error) {
	if retriever == nil || completer == nil {
		return nil, fmt.Errorf("answerer requires a retriever and a completer")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	library := cfg.Library
	if library == nil {
		var err error
		if library, err = prompts.Default(); err != nil {
			return nil, fmt.Errorf("load prompt templates: %w", err)
		}
	}

	classifier := cfg.Classifier
	if classifier == nil {
		classifier = classify.NewKeywordClassifier(classify.DefaultKeywords())
	}

	probes := cfg.Probes
	if len(probes) == 0 {
		probes = DefaultProbes
	}

	a := &Answerer{
		retriever:        retriever,
		completer:        completer,
		classifier:       classifier,
		library:          library,
		condenser:        NewCondenser(completer, library, cfg.Metrics, logger),
		topK:             orDefault(cfg.TopK, DefaultTopK),
		deepTopK:         orDefault(cfg.DeepTopK, DefaultDeepTopK),
		probeK:           orDefault(cfg.ProbeK, DefaultProbeK),
		probes:           probes,
		condenseFallback: cfg.CondenseFallback,
		metrics:          cfg.Metrics,
		logger:           logger,
	}

	policy := "fail_closed"
	if a.condenseFallback {
		policy = "fallback_to_question"
	}
	logger.Debug("answerer ready",
		"condense_policy", policy,
		"top_k", a.topK,
		"deep_top_k", a.deepTopK,
		"probe_k", a.probeK,
		"templates_version", library.Version())

	return a, nil
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

// Answer answers question about the video behind the retriever. history is
// read, never modified. An empty targeted retrieval is not an error: the
// answer is prompts.Refusal with no documents and no model call.
func (a *Answerer) Answer(ctx context.Context, question string, history []models.ConversationTurn) (*Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	start := time.Now()
	category := a.classifier.Classify(question)

	var (
		ans *Answer
		err error
	)
	if category == classify.Summary {
		ans, err = a.summarize(ctx, question)
	} else {
		ans, err = a.answerTargeted(ctx, question, category, history)
	}
	if err != nil {
		return nil, err
	}

	if a.metrics != nil {
		a.metrics.RecordAnswer(string(category))
	}
	a.logger.Info("answered question",
		"category", category,
		"documents", len(ans.Documents),
		"citations", len(ans.Citations),
		"condensed", ans.Query != question,
		"duration_ms", time.Since(start).Milliseconds())
	return ans, nil
}

func (a *Answerer) summarize(ctx context.Context, question string) (*Answer, error) {
	docs, err := a.timedRetrieve(ctx, func(ctx context.Context) ([]models.Chunk, error) {
		return Broad(ctx, a.retriever, a.probes, a.probeK)
	})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return refusal(classify.Summary, question), nil
	}

	prompt, err := a.library.Render(prompts.NameSummary, map[string]any{
		"context": prompts.ContextBlock(docs),
	})
	if err != nil {
		return nil, err
	}
	return a.generate(ctx, prompt, docs, classify.Summary, question)
}

func (a *Answerer) answerTargeted(ctx context.Context, question string, category classify.Category, history []models.ConversationTurn) (*Answer, error) {
	query := question
	if len(history) > 0 {
		rewritten, err := a.condenser.Condense(ctx, question, history)
		switch {
		case err == nil:
			query = rewritten
		case a.condenseFallback:
			a.logger.Warn("condense failed, retrieving with original question", "error", err)
		default:
			return nil, err
		}
	}

	k := a.topK
	if category == classify.Deep {
		k = a.deepTopK
	}

	docs, err := a.timedRetrieve(ctx, func(ctx context.Context) ([]models.Chunk, error) {
		return Targeted(ctx, a.retriever, query, k)
	})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return refusal(category, query), nil
	}

	prompt, err := a.library.Render(prompts.NameAnswer, map[string]any{
		"context":  prompts.ContextBlock(docs),
		"question": question,
		"history":  models.FormatHistory(models.RecentTurns(history)),
	})
	if err != nil {
		return nil, err
	}
	return a.generate(ctx, prompt, docs, category, query)
}

func (a *Answerer) timedRetrieve(ctx context.Context, fn func(context.Context) ([]models.Chunk, error)) ([]models.Chunk, error) {
	defer a.metrics.Since(metrics.OpRetrieval, time.Now())
	return fn(ctx)
}

func (a *Answerer) generate(ctx context.Context, prompt string, docs []models.Chunk, category classify.Category, query string) (*Answer, error) {
	text, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	return &Answer{
		Text:      strings.TrimSpace(text),
		Documents: docs,
		Citations: models.ExtractCitations(docs),
		Category:  category,
		Query:     query,
	}, nil
}

func refusal(category classify.Category, query string) *Answer {
	return &Answer{
		Text:      prompts.Refusal,
		Documents: []models.Chunk{},
		Citations: []models.Citation{},
		Category:  category,
		Query:     query,
	}
}

// ConfigFrom builds an AnswererConfig from application settings. Configured
// routing lists replace the matching built-in list; empty ones keep it.
func ConfigFrom(cfg config.Config, collector *metrics.Collector, logger *slog.Logger) AnswererConfig {
	ac := AnswererConfig{
		TopK:             cfg.TopK,
		DeepTopK:         cfg.DeepTopK,
		ProbeK:           cfg.ProbeK,
		Probes:           cfg.Routing.Probes,
		CondenseFallback: cfg.CondenseFallback,
		Metrics:          collector,
		Logger:           logger,
	}

	kw := cfg.Routing.Keywords
	if len(kw.Summary) > 0 || len(kw.Deep) > 0 {
		def := classify.DefaultKeywords()
		if len(kw.Summary) == 0 {
			kw.Summary = def.Summary
		}
		if len(kw.Deep) == 0 {
			kw.Deep = def.Deep
		}
		ac.Classifier = classify.NewKeywordClassifier(kw)
	}
	return ac
}
