package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/TheRealHZL/MentalHealth-sub001/internal/core/domain"
)

// maxKeywords caps how many keywords one intent keeps after training. More
// keywords dilute the overlap score without adding recall on short inputs.
const maxKeywords = 16

const defaultFallback = "I'm here with you. Can you tell me a bit more about how you're feeling?"

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "am": true, "be": true,
	"but": true, "can": true, "do": true, "for": true, "have": true, "i": true,
	"im": true, "in": true, "is": true, "it": true, "me": true, "my": true,
	"of": true, "on": true, "so": true, "that": true, "the": true, "this": true,
	"to": true, "was": true, "what": true, "with": true, "you": true,
}

// dataset is the on-disk training input: tagged example phrases with the
// responses the model should give for them.
type dataset struct {
	Intents []struct {
		Tag       string   `json:"tag"`
		Patterns  []string `json:"patterns"`
		Responses []string `json:"responses"`
	} `json:"intents"`
	Fallback string `json:"fallback"`
}

// Trainer builds an IntentModel from a JSON dataset by extracting the most
// frequent non-stopword tokens of each intent's example phrases. The
// algorithm itself is deliberately simple; everything upstream treats it as
// an opaque capability behind the Trainer port.
type Trainer struct{}

func NewTrainer() *Trainer {
	return &Trainer{}
}

// Train reads the dataset and produces a model. Cancellation is cooperative:
// ctx is checked between intents, and a cancelled run returns ctx.Err() so
// the coordinator discards the partial result.
func (t *Trainer) Train(ctx context.Context, datasetRef string) (*domain.IntentModel, error) {
	data, err := os.ReadFile(datasetRef)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", datasetRef, err)
	}

	var ds dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", datasetRef, err)
	}

	model := &domain.IntentModel{Fallback: ds.Fallback}
	if model.Fallback == "" {
		model.Fallback = defaultFallback
	}

	for _, in := range ds.Intents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if in.Tag == "" || len(in.Patterns) == 0 || len(in.Responses) == 0 {
			continue
		}
		model.Intents = append(model.Intents, domain.Intent{
			Tag:       in.Tag,
			Keywords:  extractKeywords(in.Patterns),
			Responses: in.Responses,
		})
	}

	if len(model.Intents) == 0 {
		return nil, domain.ErrEmptyDataset
	}
	return model, nil
}

// extractKeywords ranks the tokens of all patterns by frequency, ties broken
// alphabetically so training is deterministic.
func extractKeywords(patterns []string) []string {
	freq := make(map[string]int)
	for _, p := range patterns {
		for tok := range domain.Tokenize(p) {
			if !stopwords[tok] {
				freq[tok]++
			}
		}
	}

	keywords := make([]string, 0, len(freq))
	for tok := range freq {
		keywords = append(keywords, tok)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if freq[keywords[i]] != freq[keywords[j]] {
			return freq[keywords[i]] > freq[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}
