package service

import (
	"strings"
	"time"

	"github.com/bafa2024/complaint-hub-beta/internal/domain"
)

// SLA windows per urgency level: the maximum time an unresolved ticket
// may age before it is surfaced as urgent.
const (
	slaCritical = 4 * time.Hour
	slaHigh     = 10 * time.Hour
	slaMedium   = 20 * time.Hour
	slaLow      = 48 * time.Hour

	// publicDisclosureAge is how long an unresolved public ticket must age
	// before it becomes eligible for the anonymized public listing.
	publicDisclosureAge = 48 * time.Hour

	// publicDescriptionPrefix bounds how much of a complaint is disclosed.
	publicDescriptionPrefix = 200

	// defaultLocale substitutes a missing complainant city.
	defaultLocale = "India"
)

// SLAWindowFor maps an urgency level to its resolution window.
func SLAWindowFor(urgency domain.TicketUrgency) time.Duration {
	switch urgency {
	case domain.UrgencyCritical:
		return slaCritical
	case domain.UrgencyHigh:
		return slaHigh
	case domain.UrgencyLow:
		return slaLow
	default:
		return slaMedium
	}
}

// IsUrgent derives the urgent flag from stored fields alone: an
// unresolved ticket past its SLA window. Every caller gets the same
// derivation; nothing is stored.
func IsUrgent(t *domain.Ticket, now time.Time) bool {
	if t.Status == domain.TicketStatusResolved {
		return false
	}
	return now.Sub(t.CreatedAt) > SLAWindowFor(t.Urgency)
}

// EligibleForPublic reports whether a ticket may appear in the public
// complaint listing.
func EligibleForPublic(t *domain.Ticket, now time.Time) bool {
	if !t.IsPublic || t.Status == domain.TicketStatusResolved {
		return false
	}
	return now.Sub(t.CreatedAt) > publicDisclosureAge
}

// truncateDescription bounds the disclosed complaint text to the public
// prefix, appending an ellipsis when truncated. Truncation happens on a
// rune boundary so multibyte text stays valid UTF-8.
func truncateDescription(description string) string {
	description = strings.TrimSpace(description)
	runes := []rune(description)
	if len(runes) <= publicDescriptionPrefix {
		return description
	}
	return string(runes[:publicDescriptionPrefix]) + "..."
}
