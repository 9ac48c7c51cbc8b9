package classifier

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bafa2024/complaint-hub-beta/internal/config"
	"github.com/bafa2024/complaint-hub-beta/internal/domain"
)

// Classification is the result of analyzing raw complaint text.
type Classification struct {
	Category   string
	Urgency    domain.TicketUrgency
	Sentiment  float64
	AbuseLevel int
}

// Classifier maps raw complaint text to a Classification. Implementations
// may call external services and are expected to honor ctx deadlines; the
// lifecycle engine applies its own timeout and falls back on failure.
type Classifier interface {
	Classify(ctx context.Context, text string) (Classification, error)
}

// Fallback is applied when classification fails or times out. Intake is
// never blocked on classifier availability.
func Fallback() Classification {
	return Classification{
		Category:  "complaint",
		Urgency:   domain.UrgencyMedium,
		Sentiment: 0,
	}
}

// New selects a provider by configuration.
func New(cfg config.ClassifierConfig, logger *zap.Logger) (Classifier, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "keyword":
		return NewKeywordClassifier(), nil
	case "static":
		return staticClassifier{}, nil
	default:
		return nil, fmt.Errorf("unknown classifier provider %q", cfg.Provider)
	}
}

// staticClassifier always returns the fallback classification. Useful for
// environments without any analysis capability.
type staticClassifier struct{}

func (staticClassifier) Classify(_ context.Context, _ string) (Classification, error) {
	return Fallback(), nil
}
