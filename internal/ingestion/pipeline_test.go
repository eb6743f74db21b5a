package ingestion

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/domain/models"
)

type fakeRepo struct {
	pingErr   error
	schemaErr error

	syncedAssets []models.Asset
	syncErr      error

	ids    map[string]int64
	idsErr error

	insertedQuotes []models.Quote
	quoteDate      time.Time
	quotesErr      error

	insertedDividends []models.Dividend
	dividendsErr      error
}

func (f *fakeRepo) Ping() error         { return f.pingErr }
func (f *fakeRepo) EnsureSchema() error { return f.schemaErr }

func (f *fakeRepo) AssetIDsByCode() (map[string]int64, error) {
	return f.ids, f.idsErr
}

func (f *fakeRepo) SyncAssets(assets []models.Asset) (int, int, error) {
	f.syncedAssets = assets
	return len(assets), 0, f.syncErr
}

func (f *fakeRepo) InsertQuotes(quotes []models.Quote, targetDate time.Time) (int, error) {
	f.insertedQuotes = quotes
	f.quoteDate = targetDate
	return len(quotes), f.quotesErr
}

func (f *fakeRepo) InsertDividends(events []models.Dividend, idsByCode map[string]int64) (int, error) {
	f.insertedDividends = events
	return len(events), f.dividendsErr
}

func (f *fakeRepo) ListAssets(assetType, sector string) ([]models.Asset, error) { return nil, nil }
func (f *fakeRepo) QuoteHistory(code string, days int) ([]models.QuoteHistoryEntry, error) {
	return nil, nil
}
func (f *fakeRepo) Dividends(code string, year int) ([]models.DividendEntry, error) {
	return nil, nil
}
func (f *fakeRepo) PortfolioPositions() ([]models.PortfolioPosition, error) { return nil, nil }
func (f *fakeRepo) SystemSummary() (models.SystemSummary, error) {
	return models.SystemSummary{}, nil
}

type fakeDownloader struct {
	payload []byte
	err     error
	year    int
}

func (f *fakeDownloader) Download(_ context.Context, year int) ([]byte, error) {
	f.year = year
	return f.payload, f.err
}

// sampleArchive carries two instruments on 2024-01-02.
func sampleArchive(t *testing.T) []byte {
	t.Helper()
	lines := []string{
		quoteLine("20240102", "PETR4", "PETROBRAS", "0000000003750", "0000000003820", "0000000003700", "0000000003760", "0000000003800", "01500", "000000000002500000", "000000000950000000"),
		quoteLine("20240102", "VALE3", "VALE", "0000000006800", "0000000006950", "0000000006750", "0000000006850", "0000000006900", "02100", "000000000003100000", "000000002120000000"),
	}
	return zipArchive(t, "COTAHIST_A2024.TXT", []byte(strings.Join(lines, "\n")+"\n"))
}

func TestPipeline_Run(t *testing.T) {
	repo := &fakeRepo{ids: map[string]int64{"PETR4": 1, "VALE3": 2}}
	dl := &fakeDownloader{payload: sampleArchive(t)}

	p := NewPipeline(repo, dl, WithTargetDate(day(2024, time.January, 2)))
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if p.Stage() != StageDone {
		t.Errorf("stage = %s, want done", p.Stage())
	}
	if dl.year != 2024 {
		t.Errorf("download year = %d, want 2024", dl.year)
	}
	if len(repo.syncedAssets) != 2 {
		t.Fatalf("synced assets = %d, want 2", len(repo.syncedAssets))
	}
	if repo.syncedAssets[0].Code != "PETR4" || repo.syncedAssets[0].Type != models.AssetTypeStock {
		t.Errorf("asset[0] = %+v, want classified PETR4 stock", repo.syncedAssets[0])
	}
	if len(repo.insertedQuotes) != 2 {
		t.Fatalf("inserted quotes = %d, want 2", len(repo.insertedQuotes))
	}
	if repo.insertedQuotes[0].AssetID != 1 || !repo.insertedQuotes[0].Close.Valid {
		t.Errorf("quote[0] = %+v, want resolved PETR4 row", repo.insertedQuotes[0])
	}
	if !repo.quoteDate.Equal(day(2024, time.January, 2)) {
		t.Errorf("purge date = %s, want 2024-01-02", repo.quoteDate.Format("2006-01-02"))
	}
	// No dividend source attached: nothing collected, nothing inserted.
	if len(repo.insertedDividends) != 0 {
		t.Errorf("inserted dividends = %d, want 0", len(repo.insertedDividends))
	}
}

func TestPipeline_Run_DividendSource(t *testing.T) {
	repo := &fakeRepo{ids: map[string]int64{"PETR4": 1, "VALE3": 2}}
	dl := &fakeDownloader{payload: sampleArchive(t)}

	p := NewPipeline(repo, dl,
		WithTargetDate(day(2024, time.January, 2)),
		WithDividendSource(StaticDividendSource{}))
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(repo.insertedDividends) != len(SeedDividends()) {
		t.Errorf("inserted dividends = %d, want the full seed set", len(repo.insertedDividends))
	}
}

func TestPipeline_Run_DerivesTargetFromClock(t *testing.T) {
	repo := &fakeRepo{ids: map[string]int64{"PETR4": 1, "VALE3": 2}}
	dl := &fakeDownloader{payload: sampleArchive(t)}

	// Wednesday 2024-01-03: D-1 is Tuesday 2024-01-02.
	clock := func() time.Time { return time.Date(2024, time.January, 3, 10, 0, 0, 0, time.UTC) }
	p := NewPipeline(repo, dl, WithClock(clock))
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !repo.quoteDate.Equal(day(2024, time.January, 2)) {
		t.Errorf("purge date = %s, want 2024-01-02", repo.quoteDate.Format("2006-01-02"))
	}
}

func TestPipeline_Run_UnresolvedCodesDropped(t *testing.T) {
	// VALE3 is missing from the id map, so its quote row must be dropped.
	repo := &fakeRepo{ids: map[string]int64{"PETR4": 1}}
	dl := &fakeDownloader{payload: sampleArchive(t)}

	p := NewPipeline(repo, dl, WithTargetDate(day(2024, time.January, 2)))
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(repo.insertedQuotes) != 1 {
		t.Fatalf("inserted quotes = %d, want 1", len(repo.insertedQuotes))
	}
	if repo.insertedQuotes[0].AssetID != 1 {
		t.Errorf("AssetID = %d, want 1", repo.insertedQuotes[0].AssetID)
	}
}

func TestPipeline_Run_Failures(t *testing.T) {
	target := WithTargetDate(day(2024, time.January, 2))

	t.Run("database unreachable", func(t *testing.T) {
		repo := &fakeRepo{pingErr: errors.New("connection refused")}
		p := NewPipeline(repo, &fakeDownloader{}, target)
		if err := p.Run(context.Background()); err == nil {
			t.Fatal("Run succeeded, want ping failure")
		}
		if p.Stage() != StageFailed {
			t.Errorf("stage = %s, want failed", p.Stage())
		}
	})

	t.Run("download failure aborts before parsing", func(t *testing.T) {
		dl := &fakeDownloader{err: ErrTimeout}
		p := NewPipeline(&fakeRepo{}, dl, target)
		if err := p.Run(context.Background()); !errors.Is(err, ErrTimeout) {
			t.Fatalf("err = %v, want ErrTimeout", err)
		}
	})

	t.Run("unparseable payload", func(t *testing.T) {
		dl := &fakeDownloader{payload: []byte("not a zip")}
		p := NewPipeline(&fakeRepo{}, dl, target)
		if err := p.Run(context.Background()); !errors.Is(err, ErrUnparseableFeed) {
			t.Fatalf("err = %v, want ErrUnparseableFeed", err)
		}
	})

	t.Run("no rows for any date", func(t *testing.T) {
		// Valid archive whose only row has a corrupt date.
		line := quoteLine("99999999", "PETR4", "PETROBRAS", "0000000003750", "", "", "", "0000000003800", "", "", "")
		dl := &fakeDownloader{payload: zipArchive(t, "feed.txt", []byte(line+"\n"))}
		p := NewPipeline(&fakeRepo{}, dl, target)
		if err := p.Run(context.Background()); !errors.Is(err, ErrNoRowsForDate) {
			t.Fatalf("err = %v, want ErrNoRowsForDate", err)
		}
	})

	t.Run("every row rejected by normalization", func(t *testing.T) {
		line := quoteLine("20240102", "PETR4", "PETROBRAS", "0000000000000", "", "", "", "0000000000000", "", "", "")
		dl := &fakeDownloader{payload: zipArchive(t, "feed.txt", []byte(line+"\n"))}
		p := NewPipeline(&fakeRepo{}, dl, target)
		if err := p.Run(context.Background()); !errors.Is(err, ErrTransformRejectedAll) {
			t.Fatalf("err = %v, want ErrTransformRejectedAll", err)
		}
	})

	t.Run("quote insert failure", func(t *testing.T) {
		repo := &fakeRepo{ids: map[string]int64{"PETR4": 1, "VALE3": 2}, quotesErr: errors.New("deadlock")}
		p := NewPipeline(repo, &fakeDownloader{payload: sampleArchive(t)}, target)
		if err := p.Run(context.Background()); err == nil {
			t.Fatal("Run succeeded, want insert failure")
		}
		if p.Stage() != StageFailed {
			t.Errorf("stage = %s, want failed", p.Stage())
		}
	})
}
