package core

import "errors"

// The only two failures that escape the pipeline. Everything else is
// either wrapped transport noise from the retrieval layer or an
// augmentation failure absorbed inside the synthesizer.
var (
	// ErrNoTarget means no subreddit was given to analyze.
	ErrNoTarget = errors.New("no subreddit specified")

	// ErrEmptyResult means every document was filtered out for lacking
	// analyzable content.
	ErrEmptyResult = errors.New("no analyzable content in batch")
)
