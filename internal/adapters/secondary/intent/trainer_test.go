package intent

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TheRealHZL/MentalHealth-sub001/internal/core/domain"
)

const sampleDataset = `{
  "intents": [
    {
      "tag": "anxiety",
      "patterns": ["I feel so anxious", "I am worried about everything", "panic attacks at night"],
      "responses": ["That sounds really heavy. What has been worrying you the most?"]
    },
    {
      "tag": "sleep",
      "patterns": ["I cannot sleep", "lying awake all night", "sleep problems"],
      "responses": ["Poor sleep wears everything down. How long has this been going on?"]
    }
  ],
  "fallback": "I'm here with you."
}`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "intents.json")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTrainer_Train(t *testing.T) {
	path := writeDataset(t, sampleDataset)

	model, err := NewTrainer().Train(context.Background(), path)
	assert.NoError(t, err)
	assert.Len(t, model.Intents, 2)
	assert.Equal(t, "I'm here with you.", model.Fallback)

	assert.Equal(t, "anxiety", model.Intents[0].Tag)
	assert.Contains(t, model.Intents[0].Keywords, "anxious")
	assert.Contains(t, model.Intents[0].Keywords, "worried")
	// Stopwords never become keywords.
	assert.NotContains(t, model.Intents[0].Keywords, "i")
	assert.NotContains(t, model.Intents[0].Keywords, "the")

	// The trained model answers inputs matching its dataset.
	pred := model.Respond("lately I am so anxious")
	assert.Equal(t, "anxiety", pred.Intent)
}

func TestTrainer_DefaultFallback(t *testing.T) {
	path := writeDataset(t, `{"intents":[{"tag":"a","patterns":["hello there"],"responses":["hi"]}]}`)

	model, err := NewTrainer().Train(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, defaultFallback, model.Fallback)
}

func TestTrainer_EmptyDataset(t *testing.T) {
	path := writeDataset(t, `{"intents":[]}`)

	_, err := NewTrainer().Train(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrEmptyDataset)
}

func TestTrainer_SkipsUnusableIntents(t *testing.T) {
	path := writeDataset(t, `{"intents":[
		{"tag":"","patterns":["x"],"responses":["y"]},
		{"tag":"ok","patterns":["greeting hello"],"responses":["hi"]},
		{"tag":"no-responses","patterns":["z"],"responses":[]}
	]}`)

	model, err := NewTrainer().Train(context.Background(), path)
	assert.NoError(t, err)
	assert.Len(t, model.Intents, 1)
	assert.Equal(t, "ok", model.Intents[0].Tag)
}

func TestTrainer_MissingFile(t *testing.T) {
	_, err := NewTrainer().Train(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "read dataset")
}

func TestTrainer_Cancelled(t *testing.T) {
	path := writeDataset(t, sampleDataset)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTrainer().Train(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractKeywords_Deterministic(t *testing.T) {
	patterns := []string{"feeling down and sad", "sad and hopeless", "so sad lately"}

	first := extractKeywords(patterns)
	second := extractKeywords(patterns)
	assert.Equal(t, first, second)
	// "sad" appears in every pattern, so it ranks first.
	assert.Equal(t, "sad", first[0])
}
