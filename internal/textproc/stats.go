package textproc

import (
	"regexp"
	"strings"
)

// readingWordsPerMinute is the rough adult reading speed used for the
// estimate surfaced under --verbose.
const readingWordsPerMinute = 200

var reSentenceEnd = regexp.MustCompile(`[.!?]+`)

// Statistics summarizes a normalized text blob.
type Statistics struct {
	Characters         int
	Words              int
	Sentences          int
	Paragraphs         int
	ReadingTimeMinutes float64
}

// Stats computes basic text statistics for logging and diagnostics.
func Stats(text string) Statistics {
	if text == "" {
		return Statistics{}
	}

	words := strings.Fields(text)

	sentences := 0
	for _, s := range reSentenceEnd.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}

	paragraphs := 0
	for _, p := range strings.Split(text, "\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}

	return Statistics{
		Characters:         len(text),
		Words:              len(words),
		Sentences:          sentences,
		Paragraphs:         paragraphs,
		ReadingTimeMinutes: float64(len(words)) / readingWordsPerMinute,
	}
}
