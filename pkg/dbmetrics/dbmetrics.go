package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// DBExecutor общий интерфейс для *sql.DB и *DB
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Recorder приёмник метрик запросов и пула соединений
type Recorder interface {
	ObserveDBQuery(operation string, err error, duration time.Duration)
	SetDBPoolStats(open, inUse, idle int, waitCount int64)
}

// DefaultStatsInterval период сбора статистики пула соединений
const DefaultStatsInterval = 15 * time.Second

// DB обёртка над *sql.DB, измеряющая длительность запросов
type DB struct {
	*sql.DB
	recorder Recorder
}

// Wrap оборачивает соединение и запускает фоновый сбор статистики пула
// Сбор останавливается при закрытии stopCh
func Wrap(db *sql.DB, recorder Recorder, interval time.Duration, stopCh <-chan struct{}) *DB {
	wrapped := &DB{DB: db, recorder: recorder}
	go wrapped.collectPoolStats(interval, stopCh)
	return wrapped
}

// WrapWithDefault то же, что Wrap, с интервалом DefaultStatsInterval
func WrapWithDefault(db *sql.DB, recorder Recorder, stopCh <-chan struct{}) *DB {
	return Wrap(db, recorder, DefaultStatsInterval, stopCh)
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.DB.ExecContext(ctx, query, args...)
	d.recorder.ObserveDBQuery(Operation(query), err, time.Since(start))
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.DB.QueryContext(ctx, query, args...)
	d.recorder.ObserveDBQuery(Operation(query), err, time.Since(start))
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.DB.QueryRowContext(ctx, query, args...)
	d.recorder.ObserveDBQuery(Operation(query), row.Err(), time.Since(start))
	return row
}

func (d *DB) collectPoolStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			s := d.DB.Stats()
			d.recorder.SetDBPoolStats(s.OpenConnections, s.InUse, s.Idle, s.WaitCount)
		}
	}
}

// Operation возвращает тип SQL-операции в нижнем регистре (select, insert, ...)
func Operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
