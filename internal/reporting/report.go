// Package reporting aggregates revenue-bearing reservations into period
// buckets.  It owns no state and only reads from its Source.
package reporting

import (
    "context"
    "errors"
    "fmt"
    "sort"
    "strings"
    "time"

    pkgerrors "github.com/pkg/errors"
    "github.com/rs/zerolog"
    "github.com/shopspring/decimal"
    "golang.org/x/sync/errgroup"

    "github.com/iliyamo/hotel-room-booking/internal/model"
)

// Granularity selects the bucket size of a report.
type Granularity string

const (
    Day   Granularity = "day"
    Month Granularity = "month"
    Year  Granularity = "year"
)

var (
    ErrInvalidGranularity = errors.New("invalid granularity")
    ErrInvalidPeriod      = errors.New("invalid period")
)

// layout is the bucket key format, which is also the period filter format.
func (g Granularity) layout() string {
    switch g {
    case Day:
        return time.DateOnly
    case Year:
        return "2006"
    }
    return "2006-01"
}

// ParseGranularity accepts day, month or year in any case.  An empty
// value selects month.
func ParseGranularity(s string) (Granularity, error) {
    switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
    case "":
        return Month, nil
    case Day, Month, Year:
        return g, nil
    }
    return "", fmt.Errorf("%w %q: want day, month or year", ErrInvalidGranularity, s)
}

// PeriodBounds turns a period filter into the half-open UTC interval it
// covers.  The filter uses the bucket key format of g (YYYY-MM-DD,
// YYYY-MM or YYYY).  An empty period yields zero bounds, meaning all time.
func PeriodBounds(g Granularity, period string) (time.Time, time.Time, error) {
    period = strings.TrimSpace(period)
    if period == "" {
        return time.Time{}, time.Time{}, nil
    }
    start, err := time.ParseInLocation(g.layout(), period, time.UTC)
    if err != nil {
        return time.Time{}, time.Time{}, fmt.Errorf("%w %q for %s granularity", ErrInvalidPeriod, period, g)
    }
    switch g {
    case Day:
        return start, start.AddDate(0, 0, 1), nil
    case Year:
        return start, start.AddDate(1, 0, 0), nil
    }
    return start, start.AddDate(0, 1, 0), nil
}

// Row is one bucket of a report.
type Row struct {
    Key   string          `json:"period"`
    Total decimal.Decimal `json:"total"`
    Count int             `json:"count"`
}

// Report is the outcome of GetRevenueReport.  GrandTotal and GrandCount
// cover every revenue-bearing reservation regardless of the period
// filter.
type Report struct {
    Granularity Granularity     `json:"granularity"`
    Period      string          `json:"period,omitempty"`
    Rows        []Row           `json:"rows"`
    GrandTotal  decimal.Decimal `json:"grand_total"`
    GrandCount  int             `json:"grand_count"`
}

// Aggregate buckets entries by their creation time, newest bucket first.
func Aggregate(entries []model.RevenueEntry, g Granularity) []Row {
    layout := g.layout()
    idx := map[string]int{}
    rows := []Row{}
    for _, e := range entries {
        key := e.CreatedAt.UTC().Format(layout)
        i, ok := idx[key]
        if !ok {
            i = len(rows)
            idx[key] = i
            rows = append(rows, Row{Key: key, Total: decimal.Zero})
        }
        rows[i].Total = rows[i].Total.Add(e.TotalPrice)
        rows[i].Count++
    }
    sort.Slice(rows, func(i, j int) bool { return rows[i].Key > rows[j].Key })
    return rows
}

// Source reads revenue-bearing reservations created in [from, to).  Zero
// bounds are open.
type Source interface {
    ListRevenueEntries(ctx context.Context, from, to time.Time) ([]model.RevenueEntry, error)
}

// Service builds revenue reports.
type Service struct {
    src Source
    log zerolog.Logger
}

func NewService(src Source, log zerolog.Logger) *Service {
    return &Service{src: src, log: log.With().Str("component", "reporting").Logger()}
}

// GetRevenueReport aggregates revenue by granularity, optionally limited
// to one period.  The period rows and the grand totals are read
// concurrently.
func (s *Service) GetRevenueReport(ctx context.Context, granularity, period string) (*Report, error) {
    g, err := ParseGranularity(granularity)
    if err != nil {
        return nil, err
    }
    from, to, err := PeriodBounds(g, period)
    if err != nil {
        return nil, err
    }

    var filtered, all []model.RevenueEntry
    eg, egctx := errgroup.WithContext(ctx)
    eg.Go(func() error {
        var err error
        filtered, err = s.src.ListRevenueEntries(egctx, from, to)
        return err
    })
    if !from.IsZero() {
        eg.Go(func() error {
            var err error
            all, err = s.src.ListRevenueEntries(egctx, time.Time{}, time.Time{})
            return err
        })
    }
    if err := eg.Wait(); err != nil {
        return nil, pkgerrors.Wrap(err, "load revenue entries")
    }
    if from.IsZero() {
        all = filtered
    }

    rep := &Report{
        Granularity: g,
        Period:      strings.TrimSpace(period),
        Rows:        Aggregate(filtered, g),
        GrandTotal:  decimal.Zero,
        GrandCount:  len(all),
    }
    for _, e := range all {
        rep.GrandTotal = rep.GrandTotal.Add(e.TotalPrice)
    }
    s.log.Debug().Str("granularity", string(g)).Str("period", rep.Period).Int("rows", len(rep.Rows)).Msg("revenue report built")
    return rep, nil
}
