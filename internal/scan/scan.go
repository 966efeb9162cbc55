// Package scan orchestrates one full scanner run: pull today's new highs,
// persist them, count appearances over the rolling window, drop tickers
// still in cooloff, analyze the rest and publish the results.
package scan

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"TrinityScanner/internal/analyzer"
	"TrinityScanner/internal/entry"
	"TrinityScanner/internal/ledger"
	"TrinityScanner/internal/model"
	"TrinityScanner/internal/notifier"
	"TrinityScanner/internal/rating"
	"TrinityScanner/internal/report"
	"TrinityScanner/internal/screener"
	"TrinityScanner/internal/store"
	"TrinityScanner/internal/trinity"
)

const sendRetries = 3

// Runner wires the scan stages together. Reports and Notifier may be nil
// when the caller only wants the in-memory result.
type Runner struct {
	feed     screener.Feed
	store    store.Store
	ledger   *ledger.Ledger
	detector *trinity.Detector
	analyzer *analyzer.Analyzer
	reports  *report.Writer
	notifier notifier.Notifier

	log zerolog.Logger
}

func NewRunner(feed screener.Feed, st store.Store, led *ledger.Ledger, det *trinity.Detector,
	an *analyzer.Analyzer, rep *report.Writer, n notifier.Notifier, log zerolog.Logger) *Runner {
	return &Runner{
		feed:     feed,
		store:    st,
		ledger:   led,
		detector: det,
		analyzer: an,
		reports:  rep,
		notifier: n,
		log:      log.With().Str("component", "scan").Logger(),
	}
}

// Result is what one run produced. Reports holds the paths of the files
// written; it stays empty on dry runs.
type Result struct {
	Run        model.ScanRun
	Candidates []model.Candidate
	Suppressed []string
	Reports    []string
}

// Run executes the pipeline for asOf. A dry run reads existing history and
// previews the outcome without writing snapshots, ledger entries, run
// records, reports or email.
//
// Snapshots are persisted before any analysis so a failure in a later
// stage never loses the day's data. Rerunning the same day is safe: the
// ledger ignores duplicate flags, tickers flagged today stay fresh on the
// rerun, and the report files are simply rewritten.
func (r *Runner) Run(ctx context.Context, asOf time.Time, dry bool) (*Result, error) {
	started := time.Now()
	day := model.Day(asOf)

	quotes, outcomes, err := r.feed.FetchNewHighs(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch new highs: %w", err)
	}
	quotes = dedupeQuotes(quotes)
	r.log.Info().Int("tickers", len(quotes)).Int("rows_skipped", len(outcomes)).
		Str("day", day.Format("2006-01-02")).Bool("dry", dry).Msg("screener scan complete")

	snaps := make([]model.Snapshot, 0, len(quotes))
	for _, q := range quotes {
		snaps = append(snaps, model.Snapshot{Ticker: q.Ticker, Price: q.Price, Date: day})
	}
	if !dry {
		if err := r.store.AppendSnapshots(ctx, snaps); err != nil {
			return nil, fmt.Errorf("persist snapshots: %w", err)
		}
	}

	history, err := r.store.ListSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("read snapshot history: %w", err)
	}
	if dry {
		history = append(history, snaps...)
	}
	h := trinity.BuildHistory(history)

	view, err := r.ledger.Load(ctx)
	if err != nil {
		return nil, err
	}

	var (
		fresh      []model.Candidate
		suppressed []string
	)
	for _, q := range quotes {
		win, ok := r.detector.Detect(h, q.Ticker, day)
		if !ok {
			continue
		}
		// A ticker flagged earlier today stays fresh so a rerun of the
		// same day reproduces the same report.
		if view.Suppressed(q.Ticker, day) && !view.FlaggedOn(q.Ticker, day) {
			suppressed = append(suppressed, q.Ticker)
			r.log.Debug().Str("ticker", q.Ticker).Msg("in cooloff, suppressed")
			continue
		}
		assess := entry.Classify(h, q.Ticker, q.Price, day)
		fresh = append(fresh, r.compile(ctx, q.Ticker, q.Price, win, assess))
		if !dry {
			if err := r.ledger.RecordFlagged(ctx, q.Ticker, day); err != nil {
				return nil, err
			}
		}
	}
	sort.Strings(suppressed)
	rank(fresh)

	run := model.ScanRun{
		ID:          uuid.NewString(),
		AsOf:        day,
		StartedAt:   started,
		FinishedAt:  time.Now(),
		TickersSeen: len(quotes),
		Candidates:  len(fresh) + len(suppressed),
		Fresh:       len(fresh),
		Suppressed:  len(suppressed),
		RowErrors:   len(outcomes),
	}
	res := &Result{Run: run, Candidates: fresh, Suppressed: suppressed}
	r.log.Info().Int("candidates", run.Candidates).Int("fresh", run.Fresh).
		Int("suppressed", run.Suppressed).Msg("scan finished")
	if dry {
		return res, nil
	}

	if err := r.store.RecordRun(ctx, run); err != nil {
		r.log.Error().Err(err).Msg("record scan run")
	}
	if r.reports != nil {
		paths, err := r.reports.SaveAll(run, fresh)
		if err != nil {
			r.log.Error().Err(err).Msg("write reports")
		} else {
			res.Reports = paths
		}
	}
	if r.notifier != nil {
		msg := notifier.Message{
			Subject:     report.Subject(day),
			Body:        report.Summary(run, fresh, suppressed),
			Attachments: res.Reports,
		}
		if err := notifier.SendWithRetry(ctx, r.notifier, msg, sendRetries, r.log); err != nil {
			r.log.Error().Err(err).Msg("send notification")
		}
	}
	return res, nil
}

// compile builds the report row for one fresh candidate. Without an
// analyzer it falls back to a bare row rated on the pattern alone.
func (r *Runner) compile(ctx context.Context, ticker string, price float64, win model.SignalWindow, assess entry.Assessment) model.Candidate {
	if r.analyzer != nil {
		cand, err := r.analyzer.Compile(ctx, ticker, price, true, win.Count, assess)
		if err != nil {
			r.log.Warn().Err(err).Str("ticker", ticker).Msg("analysis degraded")
		}
		return cand
	}
	verdict, factors := rating.Evaluate(rating.Inputs{Trinity: true})
	return model.Candidate{
		Ticker:          ticker,
		Company:         ticker,
		Price:           price,
		Trinity:         true,
		Appearances:     win.Count,
		EntryStatus:     assess.Status,
		DaysSinceSignal: assess.DaysSinceSignal,
		PriceMovePct:    assess.Move * 100,
		Rating:          verdict,
		Factors:         factors,
		RiskLevel:       model.RiskMedium,
	}
}

// rank orders candidates strongest first and numbers them from 1.
func rank(cands []model.Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		pi, pj := cands[i].Rating.Priority(), cands[j].Rating.Priority()
		if pi != pj {
			return pi < pj
		}
		ui, uj := upside(cands[i]), upside(cands[j])
		if ui != uj {
			return ui > uj
		}
		return cands[i].Ticker < cands[j].Ticker
	})
	for i := range cands {
		cands[i].Rank = i + 1
	}
}

func upside(c model.Candidate) float64 {
	if c.Fundamental == nil {
		return 0
	}
	return c.Fundamental.ReturnPotentialPct
}

func dedupeQuotes(quotes []model.Quote) []model.Quote {
	seen := make(map[string]bool, len(quotes))
	out := make([]model.Quote, 0, len(quotes))
	for _, q := range quotes {
		if q.Ticker == "" || seen[q.Ticker] {
			continue
		}
		seen[q.Ticker] = true
		out = append(out, q)
	}
	return out
}
