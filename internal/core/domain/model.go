package domain

import (
	"hash/fnv"
	"strings"
	"unicode"
)

// IntentModel is the inference-ready object produced by training and
// deserialized by the loader. It maps user input to a supportive response by
// keyword overlap against trained intents. Logically immutable after
// construction; concurrent reads are safe.
type IntentModel struct {
	Version  string   `json:"version"`
	Intents  []Intent `json:"intents"`
	Fallback string   `json:"fallback"`
}

type Intent struct {
	Tag       string   `json:"tag"`
	Keywords  []string `json:"keywords"`
	Responses []string `json:"responses"`
}

// Prediction is the raw model output before the engine wraps it with
// identity and version metadata.
type Prediction struct {
	Intent     string
	Output     string
	Confidence float64
}

// Respond scores every intent against the tokenized input and returns the
// best match. Inputs matching no intent fall back to the model's default
// response with zero confidence.
func (m *IntentModel) Respond(input string) Prediction {
	tokens := Tokenize(input)

	best := Prediction{Output: m.Fallback}
	for _, intent := range m.Intents {
		score := intent.score(tokens)
		if score > best.Confidence {
			best = Prediction{
				Intent:     intent.Tag,
				Output:     intent.pick(input),
				Confidence: score,
			}
		}
	}
	return best
}

func (in Intent) score(tokens map[string]bool) float64 {
	if len(in.Keywords) == 0 {
		return 0
	}
	hits := 0
	for _, kw := range in.Keywords {
		if tokens[kw] {
			hits++
		}
	}
	return float64(hits) / float64(len(in.Keywords))
}

// pick selects a response deterministically from the input so that repeated
// identical inputs get the same answer while different inputs vary.
func (in Intent) pick(input string) string {
	if len(in.Responses) == 0 {
		return ""
	}
	h := fnv.New32a()
	h.Write([]byte(input))
	return in.Responses[int(h.Sum32())%len(in.Responses)]
}

// Tokenize lowercases the input and splits on anything that is not a letter
// or digit. Shared between inference and the intent trainer so both sides
// agree on what a keyword is.
func Tokenize(s string) map[string]bool {
	tokens := make(map[string]bool)
	for _, tok := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		tokens[tok] = true
	}
	return tokens
}
