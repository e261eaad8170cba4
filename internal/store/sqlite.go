package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"office-pricing/internal/model"
)

const dateLayout = "2006-01-02"

// Store is the local persistent cache: provider exports, published price
// history, and the append-only override log. The pricing core only reads
// from it during a run; writes happen in sync and analyst actions.
type Store struct {
	db *sqlx.DB
}

// Open opens (and migrates) the SQLite database at path. WAL mode keeps
// readers from blocking the sync writer.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
CREATE TABLE IF NOT EXISTS monthly_expenses (
	building_name       TEXT NOT NULL,
	year                INTEGER NOT NULL,
	month               INTEGER NOT NULL,
	total_expense       REAL NOT NULL,
	total_seats         INTEGER NOT NULL,
	sold_price_per_seat REAL NOT NULL,
	PRIMARY KEY (building_name, year, month)
);
CREATE TABLE IF NOT EXISTS daily_occupancies (
	building_name TEXT NOT NULL,
	date          TEXT NOT NULL,
	occupancy_pct REAL NOT NULL,
	PRIMARY KEY (building_name, date)
);
CREATE TABLE IF NOT EXISTS published_prices (
	building_name TEXT NOT NULL,
	year          INTEGER NOT NULL,
	month         INTEGER NOT NULL,
	price         REAL NOT NULL,
	PRIMARY KEY (building_name, year, month)
);
CREATE TABLE IF NOT EXISTS price_overrides (
	id             TEXT PRIMARY KEY,
	location       TEXT NOT NULL,
	year           INTEGER NOT NULL,
	month          INTEGER NOT NULL,
	analyst_name   TEXT NOT NULL,
	reason         TEXT NOT NULL,
	override_price REAL NOT NULL,
	created_at     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_overrides_period ON price_overrides (location, year, month);
`
	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// UpsertMonthlyExpenses replaces the cached rows for each (building, period)
// present in rows.
func (s *Store) UpsertMonthlyExpenses(rows []model.MonthlyExpenseRow) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const q = `INSERT OR REPLACE INTO monthly_expenses
		(building_name, year, month, total_expense, total_seats, sold_price_per_seat)
		VALUES (?, ?, ?, ?, ?, ?)`
	for _, r := range rows {
		if _, err := tx.Exec(q, r.BuildingName, r.Year, r.Month, r.TotalExpense, r.TotalSeats, r.SoldPricePerSeat); err != nil {
			return fmt.Errorf("upsert monthly expense: %w", err)
		}
	}
	return tx.Commit()
}

// UpsertDailyOccupancies replaces the cached rows for each (building, date)
// present in rows.
func (s *Store) UpsertDailyOccupancies(rows []model.DailyOccupancyRow) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const q = `INSERT OR REPLACE INTO daily_occupancies (building_name, date, occupancy_pct) VALUES (?, ?, ?)`
	for _, r := range rows {
		if _, err := tx.Exec(q, r.BuildingName, r.Date.Format(dateLayout), r.OccupancyPct); err != nil {
			return fmt.Errorf("upsert daily occupancy: %w", err)
		}
	}
	return tx.Commit()
}

// MonthlyExpenses returns cached rows for the inclusive year/month range.
func (s *Store) MonthlyExpenses(fromYear, fromMonth, toYear, toMonth int) ([]model.MonthlyExpenseRow, error) {
	const q = `SELECT building_name, year, month, total_expense, total_seats, sold_price_per_seat
		FROM monthly_expenses
		WHERE (year*100 + month) BETWEEN ? AND ?
		ORDER BY building_name, year, month`
	var rows []model.MonthlyExpenseRow
	if err := s.db.Select(&rows, q, fromYear*100+fromMonth, toYear*100+toMonth); err != nil {
		return nil, fmt.Errorf("select monthly expenses: %w", err)
	}
	return rows, nil
}

type dailyRow struct {
	BuildingName string  `db:"building_name"`
	Date         string  `db:"date"`
	OccupancyPct float64 `db:"occupancy_pct"`
}

// DailyOccupancies returns cached rows for the inclusive date range.
func (s *Store) DailyOccupancies(from, to time.Time) ([]model.DailyOccupancyRow, error) {
	const q = `SELECT building_name, date, occupancy_pct
		FROM daily_occupancies
		WHERE date BETWEEN ? AND ?
		ORDER BY building_name, date`
	var raw []dailyRow
	if err := s.db.Select(&raw, q, from.Format(dateLayout), to.Format(dateLayout)); err != nil {
		return nil, fmt.Errorf("select daily occupancies: %w", err)
	}
	out := make([]model.DailyOccupancyRow, 0, len(raw))
	for _, r := range raw {
		d, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			return nil, fmt.Errorf("bad date %q: %w", r.Date, err)
		}
		out = append(out, model.DailyOccupancyRow{BuildingName: r.BuildingName, Date: d, OccupancyPct: r.OccupancyPct})
	}
	return out, nil
}

// SetPublishedPrice records the published price effective from year/month.
func (s *Store) SetPublishedPrice(p model.PublishedPrice) error {
	const q = `INSERT OR REPLACE INTO published_prices (building_name, year, month, price) VALUES (?, ?, ?, ?)`
	_, err := s.db.Exec(q, p.BuildingName, p.Year, p.Month, p.Price)
	if err != nil {
		return fmt.Errorf("set published price: %w", err)
	}
	return nil
}

// PublishedPriceFor returns the published price in effect for the period:
// the entry with the greatest effective year/month not after it. Nil when
// none is set. Implements the engine's PublishedPriceSource.
func (s *Store) PublishedPriceFor(location string, year, month int) (*float64, error) {
	const q = `SELECT price FROM published_prices
		WHERE building_name = ? AND (year*100 + month) <= ?
		ORDER BY (year*100 + month) DESC LIMIT 1`
	var price float64
	err := s.db.Get(&price, q, location, year*100+month)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select published price: %w", err)
	}
	return &price, nil
}

// AddOverride appends one override entry. The log is insert-only; no update
// or delete statements exist for this table.
func (s *Store) AddOverride(o model.Override) (model.Override, error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	const q = `INSERT INTO price_overrides (id, location, year, month, analyst_name, reason, override_price, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.Exec(q, o.ID.String(), o.Location, o.Year, o.Month, o.AnalystName, o.Reason, o.OverridePrice,
		o.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return model.Override{}, fmt.Errorf("insert override: %w", err)
	}
	return o, nil
}

type overrideRow struct {
	ID            string  `db:"id"`
	Location      string  `db:"location"`
	Year          int     `db:"year"`
	Month         int     `db:"month"`
	AnalystName   string  `db:"analyst_name"`
	Reason        string  `db:"reason"`
	OverridePrice float64 `db:"override_price"`
	CreatedAt     string  `db:"created_at"`
}

// OverridesFor returns every override entry recorded for the location and
// period, oldest first. Implements the engine's OverrideSource.
func (s *Store) OverridesFor(location string, year, month int) ([]model.Override, error) {
	const q = `SELECT id, location, year, month, analyst_name, reason, override_price, created_at
		FROM price_overrides
		WHERE location = ? AND year = ? AND month = ?
		ORDER BY created_at ASC`
	var raw []overrideRow
	if err := s.db.Select(&raw, q, location, year, month); err != nil {
		return nil, fmt.Errorf("select overrides: %w", err)
	}
	return decodeOverrides(raw)
}

// ListOverrides returns the override history newest first, for audit
// display. An empty location returns the log for every location.
func (s *Store) ListOverrides(location string) ([]model.Override, error) {
	const q = `SELECT id, location, year, month, analyst_name, reason, override_price, created_at
		FROM price_overrides
		WHERE (? = '' OR location = ?)
		ORDER BY created_at DESC`
	var raw []overrideRow
	if err := s.db.Select(&raw, q, location, location); err != nil {
		return nil, fmt.Errorf("select override history: %w", err)
	}
	return decodeOverrides(raw)
}

func decodeOverrides(raw []overrideRow) ([]model.Override, error) {
	out := make([]model.Override, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("bad override id %q: %w", r.ID, err)
		}
		created, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("bad override timestamp %q: %w", r.CreatedAt, err)
		}
		out = append(out, model.Override{
			ID:            id,
			Location:      r.Location,
			Year:          r.Year,
			Month:         r.Month,
			AnalystName:   r.AnalystName,
			Reason:        r.Reason,
			OverridePrice: r.OverridePrice,
			CreatedAt:     created,
		})
	}
	return out, nil
}
