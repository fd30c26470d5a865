package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the answering pipeline.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrEmptyQuestion is returned when the question is blank.
	ErrEmptyQuestion = errors.New("empty question")

	// ErrCondense indicates the follow-up question could not be rewritten.
	ErrCondense = errors.New("condense question")

	// ErrEmptyRewrite indicates the model returned a blank standalone question.
	ErrEmptyRewrite = fmt.Errorf("%w: empty rewrite", ErrCondense)

	// ErrRetrieval indicates the retriever failed.
	ErrRetrieval = errors.New("retrieve chunks")

	// ErrGeneration indicates the final model call failed.
	ErrGeneration = errors.New("generate answer")
)
