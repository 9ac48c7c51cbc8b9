package classifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bafa2024/complaint-hub-beta/internal/domain"
)

func classify(t *testing.T, text string) Classification {
	t.Helper()
	result, err := NewKeywordClassifier().Classify(context.Background(), text)
	require.NoError(t, err)
	return result
}

func TestClassifyDefaultsToMediumComplaint(t *testing.T) {
	result := classify(t, "The package arrived at the wrong address")
	assert.Equal(t, "complaint", result.Category)
	assert.Equal(t, domain.UrgencyMedium, result.Urgency)
	assert.Zero(t, result.AbuseLevel)
}

func TestClassifyUrgentWordWinsOverSentiment(t *testing.T) {
	result := classify(t, "This is urgent, please respond")
	assert.Equal(t, domain.UrgencyCritical, result.Urgency)

	// Urgent keyword outranks sentiment-derived urgency.
	result = classify(t, "Broken, damaged, worst scam ever, fix it immediately")
	assert.Equal(t, domain.UrgencyCritical, result.Urgency)
}

func TestClassifyStrongNegativeSentimentRaisesUrgency(t *testing.T) {
	result := classify(t, "Broken item, late delivery and the worst service")
	assert.Less(t, result.Sentiment, -0.5)
	assert.Equal(t, domain.UrgencyHigh, result.Urgency)
}

func TestClassifySentimentClampsToMinusOne(t *testing.T) {
	result := classify(t, "late broken refund worst terrible angry scam fraud damaged")
	assert.Equal(t, -1.0, result.Sentiment)
}

func TestClassifyPositiveSentiment(t *testing.T) {
	result := classify(t, "Thanks for the great service, love it")
	assert.Greater(t, result.Sentiment, 0.5)
	assert.Equal(t, domain.UrgencyMedium, result.Urgency)
}

func TestClassifyCategorySignals(t *testing.T) {
	assert.Equal(t, "suggestion", classify(t, "I suggest adding dark mode").Category)
	assert.Equal(t, "feedback", classify(t, "Some feedback on the new app").Category)
	assert.Equal(t, "support", classify(t, "Need help setting this up").Category)
}

func TestClassifyCountsAbusiveWords(t *testing.T) {
	result := classify(t, "Your stupid useless product")
	assert.Equal(t, 2, result.AbuseLevel)
}

func TestClassifyHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewKeywordClassifier().Classify(ctx, "anything")
	assert.Error(t, err)
}

func TestFallbackClassification(t *testing.T) {
	fallback := Fallback()
	assert.Equal(t, "complaint", fallback.Category)
	assert.Equal(t, domain.UrgencyMedium, fallback.Urgency)
	assert.Zero(t, fallback.Sentiment)
}
