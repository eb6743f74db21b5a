package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/domain/models"
	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/logger"
)

// quoteBatchSize bounds the number of rows per multi-row upsert statement.
const quoteBatchSize = 1000

// Repository defines the contract for all database operations. It is the
// sole writer to the ativos, cotacoes and dividendos tables.
type Repository interface {
	// Ping verifies connectivity.
	Ping() error
	// EnsureSchema verifies the required tables exist and applies the
	// forward-compatible column migration (tipo/setor on ativos).
	EnsureSchema() error
	// AssetIDsByCode returns codigo -> id for every stored instrument.
	AssetIDsByCode() (map[string]int64, error)
	// SyncAssets upserts the batch and prunes stored instruments absent
	// from it that have no quote history. Returns upserted/removed counts.
	SyncAssets(assets []models.Asset) (upserted int, removed int, err error)
	// InsertQuotes purges the target date then batch-upserts the quotes.
	InsertQuotes(quotes []models.Quote, targetDate time.Time) (int, error)
	// InsertDividends resolves instrument ids by code, drops unresolved
	// events and upserts the rest.
	InsertDividends(events []models.Dividend, idsByCode map[string]int64) (int, error)

	// Read-only report queries.
	ListAssets(assetType, sector string) ([]models.Asset, error)
	QuoteHistory(code string, days int) ([]models.QuoteHistoryEntry, error)
	Dividends(code string, year int) ([]models.DividendEntry, error)
	// PortfolioPositions returns carteira holdings joined with instrument
	// identity and each instrument's most recent close.
	PortfolioPositions() ([]models.PortfolioPosition, error)
	// SystemSummary returns per-table row counts and the newest quote date.
	SystemSummary() (models.SystemSummary, error)
}

type repository struct {
	db *sql.DB
}

// NewRepository wraps an open *sql.DB (PostgreSQL).
func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Ping() error {
	return r.db.Ping()
}

// EnsureSchema checks the required tables and forward-migrates the
// ativos table. It never creates tables: the DDL in migrations/schema.sql
// is owned by the deployment, not by the service.
func (r *repository) EnsureSchema() error {
	rows, err := r.db.Query(`
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name IN ('ativos', 'cotacoes', 'dividendos', 'carteira')`)
	if err != nil {
		return fmt.Errorf("inspect schema: %w", err)
	}
	defer func() { _ = rows.Close() }()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("inspect schema: %w", err)
		}
		found[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("inspect schema: %w", err)
	}

	var missing []string
	for _, t := range []string{"ativos", "cotacoes", "dividendos", "carteira"} {
		if !found[t] {
			missing = append(missing, t)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing tables %s: apply migrations/schema.sql first", strings.Join(missing, ", "))
	}

	// Forward migration: older deployments predate the classification columns.
	if _, err := r.db.Exec(`ALTER TABLE ativos ADD COLUMN IF NOT EXISTS tipo VARCHAR(20)`); err != nil {
		return fmt.Errorf("add tipo column: %w", err)
	}
	if _, err := r.db.Exec(`ALTER TABLE ativos ADD COLUMN IF NOT EXISTS setor VARCHAR(80)`); err != nil {
		return fmt.Errorf("add setor column: %w", err)
	}

	return nil
}

func (r *repository) AssetIDsByCode() (map[string]int64, error) {
	rows, err := r.db.Query(`SELECT id, codigo FROM ativos`)
	if err != nil {
		return nil, fmt.Errorf("list asset ids: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ids := make(map[string]int64)
	for rows.Next() {
		var id int64
		var code string
		if err := rows.Scan(&id, &code); err != nil {
			return nil, fmt.Errorf("scan asset id: %w", err)
		}
		ids[code] = id
	}
	return ids, rows.Err()
}

// SyncAssets runs inside one transaction: upsert every instrument of the
// new batch by codigo, then delete stored codes absent from the batch, but
// only those with zero referencing quote rows. An instrument with history
// is never purged, only superseded.
func (r *repository) SyncAssets(assets []models.Asset) (int, int, error) {
	if len(assets) == 0 {
		logger.L().Info().Msg("no assets to sync")
		return 0, 0, nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = tx.Rollback() }()

	upsert, err := tx.Prepare(`
		INSERT INTO ativos (codigo, nome, tipo, setor)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (codigo)
		DO UPDATE SET nome = EXCLUDED.nome,
		              tipo = EXCLUDED.tipo,
		              setor = EXCLUDED.setor`)
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = upsert.Close() }()

	newCodes := make(map[string]struct{}, len(assets))
	for _, a := range assets {
		if _, err := upsert.Exec(a.Code, a.Name, string(a.Type), a.Sector); err != nil {
			return 0, 0, fmt.Errorf("upsert asset %s: %w", a.Code, err)
		}
		newCodes[a.Code] = struct{}{}
	}

	rows, err := tx.Query(`SELECT codigo FROM ativos`)
	if err != nil {
		return 0, 0, err
	}
	var stored []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			_ = rows.Close()
			return 0, 0, err
		}
		stored = append(stored, code)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return 0, 0, err
	}
	_ = rows.Close()

	removed := 0
	for _, code := range stored {
		if _, ok := newCodes[code]; ok {
			continue
		}
		var hasQuotes bool
		err := tx.QueryRow(`
			SELECT EXISTS(
				SELECT 1 FROM cotacoes c
				JOIN ativos a ON c.id_ativo = a.id
				WHERE a.codigo = $1)`, code).Scan(&hasQuotes)
		if err != nil {
			return 0, 0, fmt.Errorf("check history for %s: %w", code, err)
		}
		if hasQuotes {
			continue
		}
		if _, err := tx.Exec(`DELETE FROM ativos WHERE codigo = $1`, code); err != nil {
			return 0, 0, fmt.Errorf("remove asset %s: %w", code, err)
		}
		removed++
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}

	logger.L().Info().Int("upserted", len(assets)).Int("removed", removed).Msg("asset sync done")
	return len(assets), removed, nil
}

// InsertQuotes deletes any pre-existing quotes for the target date, then
// inserts the batch with an upsert keyed on (id_ativo, data).
//
// Two concurrent runs for the same date would interleave their purge and
// insert windows, so the whole operation holds a per-date advisory lock for
// the duration of its transaction.
func (r *repository) InsertQuotes(quotes []models.Quote, targetDate time.Time) (int, error) {
	if len(quotes) == 0 {
		logger.L().Warn().Msg("no quotes to insert")
		return 0, nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`SELECT pg_advisory_xact_lock($1)`, dateLockKey(targetDate)); err != nil {
		return 0, fmt.Errorf("acquire date lock: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM cotacoes WHERE data = $1`, targetDate)
	if err != nil {
		return 0, fmt.Errorf("purge quotes for %s: %w", targetDate.Format("2006-01-02"), err)
	}
	deleted, _ := res.RowsAffected()
	logger.L().Info().Int64("deleted", deleted).Str("date", targetDate.Format("2006-01-02")).Msg("purged existing quotes")

	// Residual-duplicate guard: a second pass in case a concurrent partial
	// write landed between purge and count.
	var remaining int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM cotacoes WHERE data = $1`, targetDate).Scan(&remaining); err != nil {
		return 0, fmt.Errorf("recheck quotes for %s: %w", targetDate.Format("2006-01-02"), err)
	}
	if remaining > 0 {
		logger.L().Warn().Int("remaining", remaining).Msg("quotes still present after purge, purging again")
		if _, err := tx.Exec(`DELETE FROM cotacoes WHERE data = $1`, targetDate); err != nil {
			return 0, fmt.Errorf("second purge for %s: %w", targetDate.Format("2006-01-02"), err)
		}
	}

	total := 0
	for start := 0; start < len(quotes); start += quoteBatchSize {
		end := start + quoteBatchSize
		if end > len(quotes) {
			end = len(quotes)
		}
		batch := quotes[start:end]
		if err := insertQuoteBatch(tx, batch); err != nil {
			return 0, fmt.Errorf("insert batch ending at row %d: %w", end, err)
		}
		total += len(batch)
		logger.L().Debug().Int("batch_rows", len(batch)).Int("total", total).Msg("quote batch inserted")
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	logger.L().Info().Int("rows", total).Str("date", targetDate.Format("2006-01-02")).Msg("quotes inserted")
	return total, nil
}

func insertQuoteBatch(tx *sql.Tx, batch []models.Quote) error {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO cotacoes (id_ativo, data, preco_abertura, preco_fechamento, maximo, minimo, negocios, volume_financeiro) VALUES `)

	args := make([]interface{}, 0, len(batch)*8)
	for i, q := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 8
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8)
		args = append(args, q.AssetID, q.Date, q.Open, q.Close, q.High, q.Low, q.Trades, q.Volume)
	}

	sb.WriteString(`
		ON CONFLICT (id_ativo, data)
		DO UPDATE SET preco_abertura = EXCLUDED.preco_abertura,
		              preco_fechamento = EXCLUDED.preco_fechamento,
		              maximo = EXCLUDED.maximo,
		              minimo = EXCLUDED.minimo,
		              negocios = EXCLUDED.negocios,
		              volume_financeiro = EXCLUDED.volume_financeiro`)

	_, err := tx.Exec(sb.String(), args...)
	return err
}

// dateLockKey derives a stable advisory-lock key from the calendar date.
func dateLockKey(d time.Time) int64 {
	return int64(d.Year())*10000 + int64(d.Month())*100 + int64(d.Day())
}

// InsertDividends resolves instrument ids by exchange code, drops events
// whose code is not in the registry, and upserts the rest keyed on
// (id_ativo, data), overwriting valor/tipo on conflict.
func (r *repository) InsertDividends(events []models.Dividend, idsByCode map[string]int64) (int, error) {
	if len(events) == 0 {
		logger.L().Info().Msg("no dividends to insert")
		return 0, nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	upsert, err := tx.Prepare(`
		INSERT INTO dividendos (id_ativo, data, valor, tipo)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id_ativo, data)
		DO UPDATE SET valor = EXCLUDED.valor,
		              tipo = EXCLUDED.tipo`)
	if err != nil {
		return 0, err
	}
	defer func() { _ = upsert.Close() }()

	inserted, dropped := 0, 0
	for _, ev := range events {
		id, ok := idsByCode[ev.Code]
		if !ok {
			dropped++
			continue
		}
		if _, err := upsert.Exec(id, ev.Date, ev.Value, string(ev.Type)); err != nil {
			return 0, fmt.Errorf("upsert dividend %s %s: %w", ev.Code, ev.Date.Format("2006-01-02"), err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	logger.L().Info().Int("inserted", inserted).Int("dropped", dropped).Msg("dividends upserted")
	return inserted, nil
}

// ListAssets returns the instrument registry, optionally filtered by type
// and/or sector. Filters build positional placeholders dynamically.
func (r *repository) ListAssets(assetType, sector string) ([]models.Asset, error) {
	query := `SELECT id, codigo, nome, COALESCE(tipo, ''), COALESCE(setor, '') FROM ativos WHERE 1=1`
	var args []interface{}

	if assetType != "" {
		args = append(args, assetType)
		query += fmt.Sprintf(" AND tipo = $%d", len(args))
	}
	if sector != "" {
		args = append(args, sector)
		query += fmt.Sprintf(" AND setor = $%d", len(args))
	}
	query += " ORDER BY codigo"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var assets []models.Asset
	for rows.Next() {
		var a models.Asset
		var tipo string
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &tipo, &a.Sector); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		a.Type = models.AssetType(tipo)
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// QuoteHistory returns the last N days of quotes for an instrument code,
// oldest first.
func (r *repository) QuoteHistory(code string, days int) ([]models.QuoteHistoryEntry, error) {
	rows, err := r.db.Query(`
		SELECT c.data, a.nome, c.preco_abertura, c.preco_fechamento,
		       c.maximo, c.minimo, c.volume_financeiro
		FROM cotacoes c
		JOIN ativos a ON c.id_ativo = a.id
		WHERE a.codigo = $1
		  AND c.data >= CURRENT_DATE - ($2 * INTERVAL '1 day')
		ORDER BY c.data`, code, days)
	if err != nil {
		return nil, fmt.Errorf("quote history for %s: %w", code, err)
	}
	defer func() { _ = rows.Close() }()

	var entries []models.QuoteHistoryEntry
	for rows.Next() {
		var e models.QuoteHistoryEntry
		if err := rows.Scan(&e.Date, &e.Name, &e.Open, &e.Close, &e.High, &e.Low, &e.Volume); err != nil {
			return nil, fmt.Errorf("scan quote history: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Dividends returns dividend events joined with instrument identity,
// optionally filtered by code and/or calendar year, most recent first.
func (r *repository) Dividends(code string, year int) ([]models.DividendEntry, error) {
	query := `
		SELECT a.codigo, a.nome, d.data, d.valor, d.tipo
		FROM dividendos d
		JOIN ativos a ON d.id_ativo = a.id
		WHERE 1=1`
	var args []interface{}

	if code != "" {
		args = append(args, code)
		query += fmt.Sprintf(" AND a.codigo = $%d", len(args))
	}
	if year != 0 {
		args = append(args, year)
		query += fmt.Sprintf(" AND EXTRACT(YEAR FROM d.data) = $%d", len(args))
	}
	query += " ORDER BY d.data DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list dividends: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []models.DividendEntry
	for rows.Next() {
		var e models.DividendEntry
		var tipo string
		if err := rows.Scan(&e.Code, &e.Name, &e.Date, &e.Value, &tipo); err != nil {
			return nil, fmt.Errorf("scan dividend: %w", err)
		}
		e.Type = models.DividendType(tipo)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// PortfolioPositions joins the portfolio with the registry and each
// instrument's most recent close. Holdings without any quote history
// come back with a NULL close.
func (r *repository) PortfolioPositions() ([]models.PortfolioPosition, error) {
	rows, err := r.db.Query(`
		SELECT a.codigo, a.nome, COALESCE(a.tipo, ''), COALESCE(a.setor, ''),
		       c.quantidade, c.preco_medio, cot.preco_fechamento
		FROM carteira c
		JOIN ativos a ON c.id_ativo = a.id
		LEFT JOIN (
			SELECT DISTINCT ON (id_ativo) id_ativo, preco_fechamento
			FROM cotacoes
			ORDER BY id_ativo, data DESC
		) cot ON c.id_ativo = cot.id_ativo
		ORDER BY a.codigo`)
	if err != nil {
		return nil, fmt.Errorf("portfolio positions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var positions []models.PortfolioPosition
	for rows.Next() {
		var p models.PortfolioPosition
		var tipo string
		if err := rows.Scan(&p.Code, &p.Name, &tipo, &p.Sector, &p.Quantity, &p.AvgPrice, &p.LastClose); err != nil {
			return nil, fmt.Errorf("scan portfolio position: %w", err)
		}
		p.Type = models.AssetType(tipo)
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// SystemSummary counts the rows of the ingestion tables and fetches the
// most recent quote date in a single round trip.
func (r *repository) SystemSummary() (models.SystemSummary, error) {
	var s models.SystemSummary
	err := r.db.QueryRow(`
		SELECT (SELECT COUNT(*) FROM ativos),
		       (SELECT COUNT(*) FROM cotacoes),
		       (SELECT COUNT(*) FROM dividendos),
		       (SELECT MAX(data) FROM cotacoes)`).
		Scan(&s.Assets, &s.Quotes, &s.Dividends, &s.LatestQuote)
	if err != nil {
		return models.SystemSummary{}, fmt.Errorf("system summary: %w", err)
	}
	return s, nil
}
