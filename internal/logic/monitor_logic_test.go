package logic

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/amantech05/Gradlink/internal/fund"
	"github.com/amantech05/Gradlink/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededMonitor(t *testing.T) *MonitorLogic {
	t.Helper()
	repo := repository.NewMemoryRepository()
	l := newTestFundLogic(repo)
	_, err := l.SeedDemoData(context.Background())
	require.NoError(t, err)

	m := NewMonitorLogic(repo, 24*time.Hour, 2)
	m.now = func() time.Time { return testNow.Add(time.Hour) }
	return m
}

func TestMonitorSummary(t *testing.T) {
	m := seededMonitor(t)

	s, err := m.Summary(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, s.DonationCount)
	assert.Equal(t, 3, s.UniqueDonors)
	assert.True(t, amount("350").Equal(s.TotalAmount))
	assert.True(t, amount("200").Equal(s.LargestAmount))
	assert.True(t, amount("50").Equal(s.SmallestAmount))
	assert.Equal(t, 3, s.RecentCount)

	s, err = m.Summary(context.Background(), time.Minute)
	require.NoError(t, err)
	assert.Zero(t, s.RecentCount)
}

func TestMonitorTopDonors(t *testing.T) {
	m := seededMonitor(t)

	top, err := m.TopDonors(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Alumni C", top[0].Name)
	assert.Equal(t, "Alumni A", top[1].Name)

	top, err = m.TopDonors(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, top, 3)
}

func TestMonitorDonations(t *testing.T) {
	m := seededMonitor(t)

	got, err := m.Donations(context.Background(), fund.DonationFilter{Search: "alumni", Bucket: fund.BucketLarge}, fund.SortByDate)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Alumni C", got[0].DonorName)

	got, err = m.Donations(context.Background(), fund.DonationFilter{}, fund.SortByName)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Alumni A", got[0].DonorName)
}

func TestMonitorExportCSV(t *testing.T) {
	m := seededMonitor(t)

	var buf bytes.Buffer
	require.NoError(t, m.ExportCSV(context.Background(), &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Name,Amount,Date,Message", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Alumni C,200.00,"))
}
