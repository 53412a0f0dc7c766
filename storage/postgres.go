package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"

	"housing-dashboard/models"
	"housing-dashboard/services"
	"housing-dashboard/utils"
)

const (
	housingTable = "housing"
	batchSize    = 50
)

// PostgresStore keeps the dataset in the housing table. Only the fixed
// housing columns are stored.
type PostgresStore struct {
	db      *sql.DB
	cleaner *services.Cleaner
	logger  *utils.Logger
}

// NewPostgresStore opens a connection to PostgreSQL, waits for it to answer
// and runs schema migrations.
func NewPostgresStore(ctx context.Context, dsn string, retry utils.RetryConfig, logger *utils.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if retry.Logger == nil {
		retry.Logger = logger
	}
	if err := retry.Do(ctx, "postgres ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	ps := &PostgresStore{db: db, cleaner: services.NewCleaner(logger), logger: logger}
	if err := ps.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return ps, nil
}

// sqlColumn is the column name used in the housing table.
func sqlColumn(name string) string { return strings.ToLower(name) }

func createTableSQL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n\trow_num SERIAL PRIMARY KEY", housingTable)
	for _, col := range models.HousingColumns {
		typ := "DOUBLE PRECISION"
		if col.Kind == models.Categorical {
			typ = "TEXT"
		}
		fmt.Fprintf(&b, ",\n\t%s %s", sqlColumn(col.Name), typ)
	}
	b.WriteString("\n);\n")
	fmt.Fprintf(&b, "CREATE INDEX IF NOT EXISTS idx_%[1]s_mszoning ON %[1]s(mszoning);\n", housingTable)
	fmt.Fprintf(&b, "CREATE INDEX IF NOT EXISTS idx_%[1]s_bldgtype ON %[1]s(bldgtype);\n", housingTable)
	return b.String()
}

func (ps *PostgresStore) migrate(ctx context.Context) error {
	_, err := ps.db.ExecContext(ctx, createTableSQL())
	return err
}

// Write replaces the stored dataset with v in a single transaction.
func (ps *PostgresStore) Write(v models.View) error {
	return ps.WriteContext(context.Background(), v)
}

// WriteContext is Write with a context.
func (ps *PostgresStore) WriteContext(ctx context.Context, v models.View) error {
	schema := v.Schema()
	idx := make([]int, len(models.HousingColumns))
	for i, col := range models.HousingColumns {
		j, ok := schema.Index(col.Name)
		if !ok {
			return fmt.Errorf("postgres: write: view has no column %q", col.Name)
		}
		idx[i] = j
	}

	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+housingTable); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	for start := 0; start < v.Len(); start += batchSize {
		end := min(start+batchSize, v.Len())
		args := make([]any, 0, (end-start)*len(idx))
		for i := start; i < end; i++ {
			r := v.At(i)
			for k, j := range idx {
				args = append(args, sqlValue(r.Value(j), models.HousingColumns[k].Kind))
			}
		}
		if _, err := tx.ExecContext(ctx, insertSQL(end-start), args...); err != nil {
			return fmt.Errorf("postgres: insert rows %d-%d: %w", start, end, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	ps.logger.Info("[postgres] Stored %d records in table %s", v.Len(), housingTable)
	return nil
}

// insertSQL builds a multi-row INSERT for n records.
func insertSQL(n int) string {
	cols := make([]string, len(models.HousingColumns))
	for i, c := range models.HousingColumns {
		cols[i] = sqlColumn(c.Name)
	}
	width := len(cols)
	groups := make([]string, n)
	for r := 0; r < n; r++ {
		ph := make([]string, width)
		for c := range ph {
			ph[c] = "$" + strconv.Itoa(r*width+c+1)
		}
		groups[r] = "(" + strings.Join(ph, ",") + ")"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		housingTable, strings.Join(cols, ", "), strings.Join(groups, ","))
}

func sqlValue(v models.Value, kind models.Kind) any {
	if v.Missing {
		return nil
	}
	if kind == models.Numeric {
		return v.Num
	}
	return v.Text
}

// Load reads the stored dataset in insertion order and runs it through the
// same cleaning as a CSV file.
func (ps *PostgresStore) Load(ctx context.Context) (*models.Table, error) {
	header := make([]string, len(models.HousingColumns))
	cols := make([]string, len(models.HousingColumns))
	for i, c := range models.HousingColumns {
		header[i] = c.Name
		cols[i] = sqlColumn(c.Name)
	}

	rows, err := ps.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY row_num", strings.Join(cols, ", "), housingTable))
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var raw [][]string
	for rows.Next() {
		nums := make([]sql.NullFloat64, len(cols))
		texts := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i, c := range models.HousingColumns {
			if c.Kind == models.Numeric {
				dest[i] = &nums[i]
			} else {
				dest[i] = &texts[i]
			}
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}

		cells := make([]string, len(cols))
		for i, c := range models.HousingColumns {
			switch {
			case c.Kind == models.Numeric && nums[i].Valid:
				cells[i] = strconv.FormatFloat(nums[i].Float64, 'f', -1, 64)
			case c.Kind == models.Categorical && texts[i].Valid:
				cells[i] = texts[i].String
			}
		}
		raw = append(raw, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}

	table, err := ps.cleaner.Clean(header, raw)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	ps.logger.Info("[postgres] Loaded %d records from table %s", table.Len(), housingTable)
	return table, nil
}

// Close closes the connection pool.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
