package duckdb

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/jsvoboda/riskledger/pkg/common"
	"github.com/jsvoboda/riskledger/pkg/utility"
	"github.com/jsvoboda/riskledger/pkg/utility/fixed"
)

const barReaderComponentName = "data.duckdb.reader"

// Reader streams OHLCV history out of a duckdb database. One table per
// symbol, columns date, open, high, low, close, volume.
type Reader struct {
	dataSourceName string
	db             *sql.DB
}

func NewReader(dataSourceName string) *Reader {
	return &Reader{
		dataSourceName: dataSourceName,
	}
}

func (r *Reader) Connect() error {
	db, err := sql.Open("duckdb", r.dataSourceName)
	if err != nil {
		return fmt.Errorf("sql.Open: %v", err)
	}
	r.db = db
	return nil
}

func (r *Reader) Close() {
	_ = r.db.Close()
}

func (r *Reader) LoadBars(ctx context.Context, table string, handler func(bar common.Bar) error) error {

	query := fmt.Sprintf(`SELECT CAST(date AS VARCHAR), open, high, low, close, volume FROM %s ORDER BY date`, table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("error preparing query: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	for rows.Next() {
		var date string
		var open, high, low, closePrice, volume float64

		if err := rows.Scan(&date, &open, &high, &low, &closePrice, &volume); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}

		bar := common.Bar{
			Source: barReaderComponentName,
			Symbol: table,
			RunID:  utility.GetRunID(),
			Date:   date,
			Open:   fixed.FromFloat64(open),
			High:   fixed.FromFloat64(high),
			Low:    fixed.FromFloat64(low),
			Close:  fixed.FromFloat64(closePrice),
			Volume: fixed.FromFloat64(volume),
		}
		if err := handler(bar); err != nil {
			return fmt.Errorf("error processing bar: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error scanning rows: %w", err)
	}

	return nil
}
