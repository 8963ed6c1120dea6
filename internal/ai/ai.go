// Package ai provides the optional generative enrichment of entries: smart
// hashtags for the work log and a one-line quest for tomorrow.
package ai

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/errors"
)

// ErrUnavailable is returned by Quest when no provider is configured.
var ErrUnavailable = stderrors.New("AI enrichment is not configured")

// Enricher produces suggestions for entry text. SmartTags never fails: any
// problem yields an empty list.
type Enricher interface {
	Available() bool
	SmartTags(ctx context.Context, text string) []string
	Quest(ctx context.Context, workLog string, mood constants.Mood) (string, error)
}

// Noop is the Enricher used when AI is disabled or no API key is set
type Noop struct{}

func (Noop) Available() bool { return false }

func (Noop) SmartTags(context.Context, string) []string { return []string{} }

func (Noop) Quest(context.Context, string, constants.Mood) (string, error) {
	return "", ErrUnavailable
}

// Options configure a provider-backed Enricher
type Options struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	Enabled bool
}

// New returns a Gemini enricher, or Noop when enrichment is disabled or there
// is no key.
func New(ctx context.Context, opts Options) (Enricher, error) {
	if !opts.Enabled || strings.TrimSpace(opts.APIKey) == "" {
		return Noop{}, nil
	}
	g, err := NewGemini(ctx, opts.APIKey, opts.Model, opts.Timeout)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// AppendTags adds the tags not already present in text, separated by spaces.
func AppendTags(text string, tags []string) string {
	lower := strings.ToLower(text)
	for _, tag := range tags {
		if strings.Contains(lower, strings.ToLower(tag)) {
			continue
		}
		if text != "" && !strings.HasSuffix(text, " ") && !strings.HasSuffix(text, "\n") {
			text += " "
		}
		text += tag
		lower = strings.ToLower(text)
	}
	return text
}

// ParseTags extracts at most AIMaxTags hashtags from a model reply, dropping
// anything that does not start with '#'.
func ParseTags(output string) []string {
	tags := []string{}
	seen := make(map[string]struct{})
	for _, tok := range strings.Fields(output) {
		tok = strings.TrimRight(tok, ",.;")
		if len(tok) < 2 || !strings.HasPrefix(tok, "#") {
			continue
		}
		key := strings.ToLower(tok)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		tags = append(tags, tok)
		if len(tags) == constants.AIMaxTags {
			break
		}
	}
	return tags
}

// ParseQuest reduces a model reply to its first non-empty line, without
// surrounding quotes or list markers.
func ParseQuest(output string) string {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*> ")
		line = strings.Trim(line, "\"'` ")
		if line != "" {
			return line
		}
	}
	return ""
}

func longEnough(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= constants.AIMinTextLen
}

func tagsPrompt(text string) string {
	return fmt.Sprintf(`Analyze this journal entry and generate %d relevant hashtags.
Return ONLY the hashtags separated by spaces (e.g. #React #Learning #Tired).
Do not write any introductory text.

Entry: %q`, constants.AIMaxTags, text)
}

func questPrompt(workLog string, mood constants.Mood) string {
	if mood == "" {
		mood = constants.MoodNeutral
	}
	return fmt.Sprintf(`You are a terse engineering lead. Based on today's work log and mood,
write ONE concrete objective for tomorrow in under 20 words.
Return only the objective, no preamble.

Mood: %s
Work log: %q`, mood, workLog)
}

func questInputError() error {
	verr := &errors.ValidationError{}
	verr.Add("workLog", "must be at least %d characters to generate a quest", constants.AIMinTextLen)
	return verr
}
