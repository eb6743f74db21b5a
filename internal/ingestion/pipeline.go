package ingestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/classifier"
	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/domain/models"
	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/logger"
	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/storage"
)

var (
	// ErrNoRowsForDate means the recency fallback was also empty: the feed
	// carried no quote-detail rows with a valid date at all.
	ErrNoRowsForDate = errors.New("feed has no rows for any date")

	// ErrTransformRejectedAll means every filtered row failed validation.
	ErrTransformRejectedAll = errors.New("every row was rejected during normalization")
)

// Stage identifies one step of an ingestion run. A run advances strictly
// forward; any failure moves it to StageFailed and aborts the remainder.
// Rows already persisted by earlier stages stay persisted (at-least-once,
// not atomic, semantics across the run).
type Stage int

const (
	StageIdle Stage = iota
	StageConnectionChecked
	StageSchemaEnsured
	StageFetched
	StageParsed
	StageFiltered
	StageTransformed
	StageAssetsExtracted
	StageAssetsSynced
	StageQuotesInserted
	StageDividendsInserted
	StageDone
	StageFailed
)

var stageNames = map[Stage]string{
	StageIdle:              "idle",
	StageConnectionChecked: "connection_checked",
	StageSchemaEnsured:     "schema_ensured",
	StageFetched:           "fetched",
	StageParsed:            "parsed",
	StageFiltered:          "filtered",
	StageTransformed:       "transformed",
	StageAssetsExtracted:   "assets_extracted",
	StageAssetsSynced:      "assets_synced",
	StageQuotesInserted:    "quotes_inserted",
	StageDividendsInserted: "dividends_inserted",
	StageDone:              "done",
	StageFailed:            "failed",
}

func (s Stage) String() string {
	if n, ok := stageNames[s]; ok {
		return n
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Downloader abstracts the feed fetcher so pipeline tests can substitute a
// canned archive.
type Downloader interface {
	Download(ctx context.Context, year int) ([]byte, error)
}

// Pipeline is one ingestion run: download, parse, filter, normalize,
// classify, persist. It is single-threaded and strictly sequential; the
// scheduler is responsible for never running two passes concurrently.
type Pipeline struct {
	repo      storage.Repository
	fetch     Downloader
	dividends DividendSource
	stage     Stage

	// now is swappable in tests to pin the business-day computation.
	now func() time.Time

	// targetDate, when non-zero, overrides the computed D-1.
	targetDate time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithTargetDate pins the business day instead of deriving D-1 from the clock.
func WithTargetDate(d time.Time) Option {
	return func(p *Pipeline) { p.targetDate = d }
}

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithDividendSource attaches a corporate-action feed. Without one the run
// skips dividend collection and inserts nothing.
func WithDividendSource(src DividendSource) Option {
	return func(p *Pipeline) { p.dividends = src }
}

// NewPipeline wires a run from its two collaborators.
func NewPipeline(repo storage.Repository, fetch Downloader, opts ...Option) *Pipeline {
	p := &Pipeline{
		repo:  repo,
		fetch: fetch,
		stage: StageIdle,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stage reports the stage the last (or current) run reached.
func (p *Pipeline) Stage() Stage {
	return p.stage
}

func (p *Pipeline) advance(s Stage) {
	p.stage = s
	logger.L().Info().Str("stage", s.String()).Msg("pipeline stage")
}

func (p *Pipeline) fail(err error) error {
	p.stage = StageFailed
	logger.L().Error().Err(err).Msg("pipeline failed")
	return err
}

// Run executes the full ingestion once. It returns the first stage failure;
// there is no retry and no cross-stage rollback.
func (p *Pipeline) Run(ctx context.Context) error {
	target := p.targetDate
	if target.IsZero() {
		target = PreviousBusinessDay(p.now())
	}
	logger.L().Info().Str("target", target.Format("2006-01-02")).Msg("ingestion run started")

	// Connection and schema checks come first so a dead database fails the
	// run before any network traffic.
	if err := p.repo.Ping(); err != nil {
		logger.L().Error().Err(err).Msg("database unreachable; ensure the PostgreSQL service is running (docker-compose up -d)")
		return p.fail(fmt.Errorf("database connection: %w", err))
	}
	p.advance(StageConnectionChecked)

	if err := p.repo.EnsureSchema(); err != nil {
		return p.fail(fmt.Errorf("schema check: %w", err))
	}
	p.advance(StageSchemaEnsured)

	payload, err := p.fetch.Download(ctx, target.Year())
	if err != nil {
		return p.fail(err)
	}
	p.advance(StageFetched)

	records, err := ParseArchive(payload)
	if err != nil {
		return p.fail(err)
	}
	p.advance(StageParsed)

	selected, effectiveDate := SelectBusinessDay(records, target)
	if len(selected) == 0 {
		return p.fail(ErrNoRowsForDate)
	}
	p.advance(StageFiltered)

	rows := Normalize(selected)
	if len(rows) == 0 {
		return p.fail(ErrTransformRejectedAll)
	}
	p.advance(StageTransformed)

	assets := extractAssets(rows)
	p.advance(StageAssetsExtracted)

	upserted, removed, err := p.repo.SyncAssets(assets)
	if err != nil {
		return p.fail(fmt.Errorf("asset sync: %w", err))
	}
	logger.L().Info().Int("upserted", upserted).Int("removed", removed).Msg("instrument registry synchronized")
	p.advance(StageAssetsSynced)

	idsByCode, err := p.repo.AssetIDsByCode()
	if err != nil {
		return p.fail(fmt.Errorf("resolve asset ids: %w", err))
	}
	quotes := buildQuotes(rows, idsByCode)
	if _, err := p.repo.InsertQuotes(quotes, effectiveDate); err != nil {
		return p.fail(fmt.Errorf("insert quotes: %w", err))
	}
	p.advance(StageQuotesInserted)

	var events []models.Dividend
	if p.dividends != nil {
		events, err = p.dividends.Collect(ctx)
		if err != nil {
			return p.fail(fmt.Errorf("collect dividends: %w", err))
		}
	}
	if _, err := p.repo.InsertDividends(events, idsByCode); err != nil {
		return p.fail(fmt.Errorf("insert dividends: %w", err))
	}
	p.advance(StageDividendsInserted)

	p.advance(StageDone)
	logger.L().Info().Str("date", effectiveDate.Format("2006-01-02")).Msg("ingestion run completed")
	return nil
}

// extractAssets derives the unique classified instrument set from the
// normalized rows. First sighting of a code wins; the feed repeats identity
// fields verbatim across a day's rows.
func extractAssets(rows []QuoteRow) []models.Asset {
	seen := make(map[string]struct{}, len(rows))
	assets := make([]models.Asset, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.Code]; ok {
			continue
		}
		seen[row.Code] = struct{}{}

		tipo, setor := classifier.Classify(row.Code, row.Name)
		assets = append(assets, models.Asset{
			Code:   row.Code,
			Name:   row.Name,
			Type:   tipo,
			Sector: setor,
		})
	}
	logger.L().Info().Int("assets", len(assets)).Msg("unique instruments extracted")
	return assets
}

// buildQuotes resolves each row's instrument id; rows whose code cannot be
// resolved are dropped before insertion.
func buildQuotes(rows []QuoteRow, idsByCode map[string]int64) []models.Quote {
	quotes := make([]models.Quote, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		id, ok := idsByCode[row.Code]
		if !ok {
			dropped++
			continue
		}
		quotes = append(quotes, models.Quote{
			AssetID: id,
			Date:    row.Date,
			Open:    row.Open,
			Close:   row.Close,
			High:    row.High,
			Low:     row.Low,
			Trades:  row.Trades,
			Volume:  row.Volume,
		})
	}
	if dropped > 0 {
		logger.L().Warn().Int("dropped", dropped).Msg("rows without resolvable instrument id dropped")
	}
	return quotes
}
