package service

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/bafa2024/complaint-hub-beta/internal/domain"
)

func TestIsUrgentDerivation(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		urgency domain.TicketUrgency
		status  domain.TicketStatus
		age     time.Duration
		urgent  bool
	}{
		{"critical inside window", domain.UrgencyCritical, domain.TicketStatusNew, 3 * time.Hour, false},
		{"critical past window", domain.UrgencyCritical, domain.TicketStatusNew, 5 * time.Hour, true},
		{"high past window", domain.UrgencyHigh, domain.TicketStatusInProgress, 11 * time.Hour, true},
		{"medium inside window", domain.UrgencyMedium, domain.TicketStatusAssigned, 19 * time.Hour, false},
		{"medium past window", domain.UrgencyMedium, domain.TicketStatusAssigned, 21 * time.Hour, true},
		{"low past window", domain.UrgencyLow, domain.TicketStatusNew, 49 * time.Hour, true},
		{"exactly at boundary", domain.UrgencyMedium, domain.TicketStatusNew, 20 * time.Hour, false},
		{"resolved never urgent", domain.UrgencyCritical, domain.TicketStatusResolved, 100 * time.Hour, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ticket := &domain.Ticket{
				Status:    tc.status,
				Urgency:   tc.urgency,
				CreatedAt: base,
			}
			assert.Equal(t, tc.urgent, IsUrgent(ticket, base.Add(tc.age)))
		})
	}
}

func TestEligibleForPublic(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	aged := base.Add(49 * time.Hour)

	ticket := &domain.Ticket{
		Status:    domain.TicketStatusNew,
		IsPublic:  true,
		CreatedAt: base,
	}
	assert.True(t, EligibleForPublic(ticket, aged))
	assert.False(t, EligibleForPublic(ticket, base.Add(time.Hour)), "too fresh")

	ticket.IsPublic = false
	assert.False(t, EligibleForPublic(ticket, aged), "private stays private")

	ticket.IsPublic = true
	ticket.Status = domain.TicketStatusResolved
	assert.False(t, EligibleForPublic(ticket, aged), "resolved complaints leave the wall")
}

func TestTruncateDescription(t *testing.T) {
	short := "the delivery was late"
	assert.Equal(t, short, truncateDescription(short))

	long := strings.Repeat("a", 300)
	got := truncateDescription(long)
	assert.Equal(t, 203, len(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, long[:200], got[:200])
}

func TestTruncateDescriptionKeepsRunesIntact(t *testing.T) {
	long := strings.Repeat("ग", 300)
	got := truncateDescription(long)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 200+3, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestStringPreviewKeepsRunesIntact(t *testing.T) {
	assert.Equal(t, "नमस्ते", stringPreview("नमस्ते", 10))

	got := stringPreview(strings.Repeat("ठ", 150), 100)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 100, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}
