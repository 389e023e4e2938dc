// Package dashboard builds the executive dashboard: four fixed analytical
// queries fanned out against the bridge, KPI derivation, and a narrative
// brief from the synthesizer.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/insightdeck/insightdeck/internal/bridge"
	"github.com/insightdeck/insightdeck/internal/llm"
	"github.com/insightdeck/insightdeck/internal/models"
	"github.com/insightdeck/insightdeck/internal/schema"
	"github.com/insightdeck/insightdeck/internal/security"
	"github.com/insightdeck/insightdeck/internal/sqlnorm"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// refreshCooldown is the minimum spacing between successful refreshes.
// A call inside the window is a no-op returning the prior stats, not a
// queued request.
const refreshCooldown = 2 * time.Second

const briefUnavailable = "Narrative brief is unavailable right now; the figures on this dashboard are unaffected."

// Aggregator rebuilds DashboardStats wholesale per refresh. The debounce
// timestamp and cached stats are the only mutable state, guarded by mu;
// concurrent refreshes collapse into one build via singleflight.
type Aggregator struct {
	bridge  *bridge.Client
	analyst llm.Analyst // nil disables the brief, not the dashboard
	schema  *schema.Context
	audit   *security.AuditLogger

	mu          sync.Mutex
	lastRefresh time.Time
	lastStats   *models.DashboardStats

	sf  singleflight.Group
	now func() time.Time // injectable clock
}

func New(br *bridge.Client, analyst llm.Analyst, sc *schema.Context, audit *security.AuditLogger) *Aggregator {
	return &Aggregator{
		bridge:  br,
		analyst: analyst,
		schema:  sc,
		audit:   audit,
		now:     time.Now,
	}
}

// Refresh returns the dashboard stats. The bool reports whether this call's
// rebuild was committed: false means the prior stats were served, either
// inside the cool-down window or because a newer refresh committed first.
func (a *Aggregator) Refresh(ctx context.Context) (*models.DashboardStats, bool) {
	a.mu.Lock()
	if a.lastStats != nil && a.now().Sub(a.lastRefresh) < refreshCooldown {
		stats := a.lastStats
		a.mu.Unlock()
		return stats, false
	}
	a.mu.Unlock()

	started := a.now()
	v, _, _ := a.sf.Do("refresh", func() (interface{}, error) {
		return a.build(ctx), nil
	})
	stats := v.(*models.DashboardStats)

	a.mu.Lock()
	defer a.mu.Unlock()
	// A build that started before the last committed refresh is stale;
	// its results must not overwrite newer ones, and the caller is served
	// the cached stats with the flag down.
	if started.After(a.lastRefresh) || a.lastStats == nil {
		a.lastStats = stats
		a.lastRefresh = a.now()
		return stats, true
	}
	return a.lastStats, false
}

// build runs one full rebuild. It never fails: each panel degrades
// independently on a fail-soft empty result.
func (a *Aggregator) build(ctx context.Context) *models.DashboardStats {
	start := a.now()
	ref := a.referenceDate(ctx)

	var yoyRows, buyerRows, compRows, kpiRows []models.ResultRow

	// Read-only and independent queries: fan out, join all before deriving.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		yoyRows = a.bridge.Execute(gctx, sqlnorm.Normalize(yoySQL(ref)))
		return nil
	})
	g.Go(func() error {
		buyerRows = a.bridge.Execute(gctx, sqlnorm.Normalize(topBuyersSQL(ref)))
		return nil
	})
	g.Go(func() error {
		compRows = a.bridge.Execute(gctx, sqlnorm.Normalize(compositionSQL(ref)))
		return nil
	})
	g.Go(func() error {
		kpiRows = a.bridge.Execute(gctx, sqlnorm.Normalize(kpiSQL(ref)))
		return nil
	})
	g.Wait()

	stats := &models.DashboardStats{
		SalesYoY:    buildYoY(yoyRows),
		TopBuyers:   buildTopBuyers(buyerRows),
		Composition: a.buildComposition(compRows),
		ActiveDate:  ref.Format(dateLayout),
		KPIs:        deriveKPIs(kpiRows),
	}
	stats.Brief = a.brief(ctx, stats)

	a.audit.LogRefresh(a.now().Sub(start).Milliseconds(), stats.Brief != briefUnavailable)
	return stats
}

// referenceDate anchors every window of one refresh on the newest
// transaction date in the data set, so panels stay mutually consistent even
// if the wall clock advances mid-refresh. Falls back to the current date
// when the query fails or the value does not parse.
func (a *Aggregator) referenceDate(ctx context.Context) time.Time {
	rows := a.bridge.Execute(ctx, sqlnorm.Normalize(maxDateSQL))
	if len(rows) > 0 {
		if t, ok := parseBridgeDate(rows[0].String("MAX_DATE")); ok {
			return t
		}
	}
	log.Warn().Msg("reference date unavailable, falling back to wall clock")
	return a.now()
}

func parseBridgeDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{dateLayout, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	// timestamp strings in unknown formats still usually lead with the date
	if len(s) > len(dateLayout) {
		if t, err := time.Parse(dateLayout, s[:len(dateLayout)]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func buildYoY(rows []models.ResultRow) []models.YoYPoint {
	points := make([]models.YoYPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, models.YoYPoint{
			Day:         r.String("DAY"),
			CurrentYear: r.Float("CURRENT_YEAR"),
			LastYear:    r.Float("LAST_YEAR"),
		})
	}
	return points
}

func buildTopBuyers(rows []models.ResultRow) []models.TopBuyerRow {
	buyers := make([]models.TopBuyerRow, 0, len(rows))
	for _, r := range rows {
		buyers = append(buyers, models.TopBuyerRow{
			Customer:      r.String("CUSTOMER"),
			Year:          int(r.Float("YR")),
			Revenue:       r.Float("REVENUE"),
			CustomerTotal: r.Float("CUSTOMER_TOTAL"),
		})
	}
	return buyers
}

func (a *Aggregator) buildComposition(rows []models.ResultRow) []models.CompositionSlice {
	slices := make([]models.CompositionSlice, 0, len(rows))
	for _, r := range rows {
		slices = append(slices, models.CompositionSlice{
			Label: a.schema.Label("TRN_TYPE", r.String("TRN_TYPE")),
			Value: r.Float("CNT"),
		})
	}
	return slices
}

func deriveKPIs(rows []models.ResultRow) models.KPISet {
	var k models.KPISet
	if len(rows) == 0 {
		return k
	}
	r := rows[0]

	k.TotalRevenue = r.Float("CURRENT_REVENUE")
	k.ActiveCustomers = int(r.Float("ACTIVE_CUSTOMERS"))
	k.LowStockCount = int(r.Float("LOW_STOCK"))
	if n := r.Float("INVOICE_COUNT"); n > 0 {
		k.AvgTicket = k.TotalRevenue / n
	}

	prev := r.Float("PREVIOUS_REVENUE")
	denom := prev
	if denom == 0 {
		// zero-base quirk carried over from the original dashboard; do not
		// generalize elsewhere
		denom = 1
	}
	k.GrowthRatePercent = (k.TotalRevenue - prev) / denom * 100
	return k
}

// brief asks the synthesizer for an executive narrative over the computed
// aggregates. A synthesis failure degrades to a placeholder; the numeric
// dashboard always renders.
func (a *Aggregator) brief(ctx context.Context, stats *models.DashboardStats) string {
	if a.analyst == nil {
		return briefUnavailable
	}

	rows := []models.ResultRow{
		{"metric": "total_revenue_30d", "value": stats.KPIs.TotalRevenue},
		{"metric": "growth_rate_percent", "value": stats.KPIs.GrowthRatePercent},
		{"metric": "active_customers", "value": float64(stats.KPIs.ActiveCustomers)},
		{"metric": "avg_ticket", "value": stats.KPIs.AvgTicket},
		{"metric": "low_stock_items", "value": float64(stats.KPIs.LowStockCount)},
	}
	for _, s := range stats.Composition {
		rows = append(rows, models.ResultRow{
			"metric": fmt.Sprintf("transaction_share_%s", s.Label),
			"value":  s.Value,
		})
	}
	for i, b := range stats.TopBuyers {
		if i >= 3 {
			break
		}
		rows = append(rows, models.ResultRow{
			"metric": "top_buyer",
			"label":  b.Customer,
			"value":  b.CustomerTotal,
		})
	}

	insight, err := a.analyst.Synthesize(ctx, rows)
	if err != nil {
		log.Warn().Err(err).Msg("dashboard brief degraded")
		return briefUnavailable
	}
	return insight.Summary
}
