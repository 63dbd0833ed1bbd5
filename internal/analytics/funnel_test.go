package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

func prospect(status string, opts ...func(*domain.ProspectRecord)) domain.ProspectRecord {
	p := domain.ProspectRecord{ProspectStatus: status}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func TestFunnelConversionRate(t *testing.T) {
	// 3 of 10 leads converted: the rate renders as "30.0".
	prospects := make([]domain.ProspectRecord, 0, 10)
	for i := 0; i < 3; i++ {
		prospects = append(prospects, prospect("DEAL"))
	}
	for i := 0; i < 7; i++ {
		prospects = append(prospects, prospect("Follow Up"))
	}
	bundle := Funnel(prospects, 0, *date(2024, time.June, 15))

	assert.Equal(t, 10, bundle.TotalProspects)
	assert.Equal(t, 3, bundle.Converted)
	assert.Equal(t, "30.0", bundle.ConversionRate)
	assert.Equal(t, 7, bundle.ActiveFollowUps)
	assert.Equal(t, "N/A", bundle.ProspectRatio)
	assert.Empty(t, bundle.RatioBand)
}

func TestFunnelConvertedMatchesStatusSubstrings(t *testing.T) {
	prospects := []domain.ProspectRecord{
		prospect("deal - closed"),
		prospect("SPK Terbit"),
		prospect("Hot"),
		prospect(""),
	}
	bundle := Funnel(prospects, 0, *date(2024, time.June, 15))
	assert.Equal(t, 2, bundle.Converted)
}

func TestFunnelProspectRatioBands(t *testing.T) {
	tests := []struct {
		leads     int
		sales     int
		wantRatio string
		wantBand  string
	}{
		{6, 2, "3.0:1", "red"},
		{8, 2, "4.0:1", "orange"},
		{10, 2, "5.0:1", "yellow"},
		{12, 2, "6.0:1", "green"},
	}
	for _, tt := range tests {
		prospects := make([]domain.ProspectRecord, tt.leads)
		bundle := Funnel(prospects, tt.sales, *date(2024, time.June, 15))
		assert.Equal(t, tt.wantRatio, bundle.ProspectRatio)
		assert.Equal(t, tt.wantBand, bundle.RatioBand)
	}
}

func TestFunnelAgingBuckets(t *testing.T) {
	ref := *date(2024, time.June, 30)
	registered := func(y int, m time.Month, d int) func(*domain.ProspectRecord) {
		return func(p *domain.ProspectRecord) { p.RegistrationDate = date(y, m, d) }
	}
	prospects := []domain.ProspectRecord{
		prospect("Follow Up", registered(2024, time.June, 28)), // 2 days: hot
		prospect("Follow Up", registered(2024, time.June, 10)), // 20 days: warm
		prospect("Follow Up", registered(2024, time.April, 1)), // cold
		prospect("Follow Up"),                                  // no date, unbucketed
		prospect("DEAL", registered(2024, time.April, 1)),      // converted leads never age
	}
	bundle := Funnel(prospects, 0, ref)

	assert.Equal(t, AgingBuckets{Hot: 1, Warm: 1, Cold: 1}, bundle.Aging)
}

func TestFunnelVelocity(t *testing.T) {
	withDates := func(reg, followUp *time.Time) func(*domain.ProspectRecord) {
		return func(p *domain.ProspectRecord) {
			p.RegistrationDate = reg
			p.FollowUpDate = followUp
		}
	}
	prospects := []domain.ProspectRecord{
		prospect("DEAL", withDates(date(2024, time.June, 1), date(2024, time.June, 5))),  // 4 days
		prospect("DEAL", withDates(date(2024, time.June, 10), date(2024, time.June, 4))), // reversed, 6 days
		prospect("DEAL", withDates(date(2024, time.June, 1), nil)),                       // skipped
	}
	bundle := Funnel(prospects, 0, *date(2024, time.June, 30))
	assert.Equal(t, 5.0, bundle.VelocityDays)
}

func TestFunnelLeaderboardMinimumLeads(t *testing.T) {
	prospects := make([]domain.ProspectRecord, 0)
	for i := 0; i < 5; i++ {
		status := "Follow Up"
		if i < 2 {
			status = "DEAL"
		}
		prospects = append(prospects, prospect(status, func(p *domain.ProspectRecord) { p.SalesmanName = "Budi" }))
	}
	prospects = append(prospects, prospect("DEAL", func(p *domain.ProspectRecord) { p.SalesmanName = "Sari" }))

	bundle := Funnel(prospects, 0, *date(2024, time.June, 15))
	require.Len(t, bundle.Leaderboard, 1)
	assert.Equal(t, "Budi", bundle.Leaderboard[0].Salesman)
	assert.Equal(t, 40.0, bundle.Leaderboard[0].Rate)
}

func TestFunnelSourceConversion(t *testing.T) {
	bySource := func(source, status string) domain.ProspectRecord {
		return prospect(status, func(p *domain.ProspectRecord) { p.SourceProspect = source })
	}
	prospects := []domain.ProspectRecord{
		bySource("Walk In", "DEAL"),
		bySource("Walk In", "Follow Up"),
		bySource("Digital", "Follow Up"),
	}
	bundle := Funnel(prospects, 0, *date(2024, time.June, 15))

	require.Len(t, bundle.SourceConversion, 2)
	assert.Equal(t, "Walk In", bundle.SourceConversion[0].Source)
	assert.Equal(t, 50.0, bundle.SourceConversion[0].Rate)
	assert.Equal(t, 0.0, bundle.SourceConversion[1].Rate)
}
