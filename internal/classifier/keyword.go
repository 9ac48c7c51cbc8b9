package classifier

import (
	"context"
	"strings"

	"github.com/bafa2024/complaint-hub-beta/internal/domain"
)

// KeywordClassifier derives category, urgency and sentiment from word
// lists. It is deterministic and needs no network access.
type KeywordClassifier struct {
	urgentWords     []string
	negativeWords   []string
	positiveWords   []string
	abusiveWords    []string
	categorySignals []categorySignal
}

type categorySignal struct {
	category string
	words    []string
}

// NewKeywordClassifier builds the default word lists.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		urgentWords:   []string{"urgent", "emergency", "immediately", "asap"},
		negativeWords: []string{"late", "broken", "refund", "worst", "terrible", "angry", "scam", "never", "fraud", "damaged"},
		positiveWords: []string{"thanks", "great", "good", "love", "appreciate", "happy"},
		abusiveWords:  []string{"stupid", "idiot", "useless", "pathetic"},
		categorySignals: []categorySignal{
			{category: "suggestion", words: []string{"suggest", "recommendation", "idea"}},
			{category: "feedback", words: []string{"feedback", "review"}},
			{category: "support", words: []string{"help", "support", "how to"}},
		},
	}
}

func (k *KeywordClassifier) Classify(ctx context.Context, text string) (Classification, error) {
	if err := ctx.Err(); err != nil {
		return Classification{}, err
	}

	lower := strings.ToLower(text)

	sentiment := k.sentimentScore(lower)
	urgency := domain.UrgencyMedium
	if sentiment < -0.5 {
		urgency = domain.UrgencyHigh
	}
	if containsAny(lower, k.urgentWords) {
		urgency = domain.UrgencyCritical
	}

	category := "complaint"
	for _, signal := range k.categorySignals {
		if containsAny(lower, signal.words) {
			category = signal.category
			break
		}
	}

	abuse := 0
	for _, word := range k.abusiveWords {
		if strings.Contains(lower, word) {
			abuse++
		}
	}

	return Classification{
		Category:   category,
		Urgency:    urgency,
		Sentiment:  sentiment,
		AbuseLevel: abuse,
	}, nil
}

// sentimentScore counts signal words and clamps the balance to [-1, 1].
func (k *KeywordClassifier) sentimentScore(lower string) float64 {
	score := 0.0
	for _, word := range k.negativeWords {
		if strings.Contains(lower, word) {
			score -= 0.3
		}
	}
	for _, word := range k.positiveWords {
		if strings.Contains(lower, word) {
			score += 0.3
		}
	}
	if score > 1 {
		score = 1
	}
	if score < -1 {
		score = -1
	}
	return score
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
