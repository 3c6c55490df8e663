package query

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Recorder receives query execution measurements.
type Recorder interface {
	// ObserveQuery records one store round trip.
	ObserveQuery(operation string, duration time.Duration, err error)
	// CountSkipped records a page whose total was derived without a count query.
	CountSkipped(operation string)
	// RowsAffected records rows changed by a bulk statement.
	RowsAffected(operation string, n int64)
}

type nopRecorder struct{}

func (nopRecorder) ObserveQuery(string, time.Duration, error) {}
func (nopRecorder) CountSkipped(string)                       {}
func (nopRecorder) RowsAffected(string, int64)                {}

// Source describes the FROM clause of a query: a base table plus explicit joins.
type Source struct {
	Table string
	Joins []string
}

// From starts a query over the source.
func (s Source) From(db *gorm.DB) *gorm.DB {
	q := db.Table(s.Table)
	for _, j := range s.Joins {
		q = q.Joins(j)
	}
	return q
}

// PageOptions tunes Paginate.
type PageOptions struct {
	// Operation labels logs and metrics.
	Operation string
	// SkipCountWhenPossible derives the total from the content when the page
	// is provably the last one instead of issuing a count query.
	SkipCountWhenPossible bool
}

// Executor runs filtered, ordered and paged queries against a gorm database.
type Executor struct {
	db       *gorm.DB
	logger   *zap.SugaredLogger
	recorder Recorder
}

// NewExecutor creates a new query executor. A nil recorder disables metrics.
func NewExecutor(db *gorm.DB, logger *zap.SugaredLogger, recorder Recorder) *Executor {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Executor{db: db, logger: logger, recorder: recorder}
}

// DB returns a session bound to ctx.
func (e *Executor) DB(ctx context.Context) *gorm.DB {
	return e.db.WithContext(ctx)
}

// WithDB returns an executor sharing logger and recorder but running on db,
// typically a transaction handle.
func (e *Executor) WithDB(db *gorm.DB) *Executor {
	return &Executor{db: db, logger: e.logger, recorder: e.recorder}
}

// Exec runs a mutating statement built by fn and returns the affected row count.
func (e *Executor) Exec(ctx context.Context, operation string, fn func(db *gorm.DB) *gorm.DB) (int64, error) {
	start := time.Now()
	result := fn(e.DB(ctx))
	e.recorder.ObserveQuery(operation, time.Since(start), result.Error)
	if result.Error != nil {
		e.logger.Errorw("Exec database error", "operation", operation, "error", result.Error)
		return 0, result.Error
	}
	e.recorder.RowsAffected(operation, result.RowsAffected)
	e.logger.Infow("Exec completed", "operation", operation, "rows_affected", result.RowsAffected)
	return result.RowsAffected, nil
}

// Find returns every row of src matching filter, mapped through proj.
// A positive limit caps the number of rows.
func Find[T any](
	ctx context.Context,
	e *Executor,
	operation string,
	src Source,
	proj Projection[T],
	filter Expr,
	orders []Order,
	limit int,
) ([]T, error) {
	e.logger.Debugw("Find called", "operation", operation, "limit", limit)

	q := ApplyOrders(Apply(src.From(e.DB(ctx)), filter).Select(proj.Select()), orders)
	if limit > 0 {
		q = q.Limit(limit)
	}

	items, err := fetch(e, operation, q, proj)
	if err != nil {
		return nil, err
	}

	e.logger.Debugw("Find completed", "operation", operation, "count", len(items))
	return items, nil
}

// Paginate fetches one page of src matching filter and the total number of
// matching rows. The page is validated before any store call. Content and
// count are separate reads and are not taken from one snapshot.
func Paginate[T any](
	ctx context.Context,
	e *Executor,
	src Source,
	proj Projection[T],
	filter Expr,
	orders []Order,
	page PageRequest,
	opts PageOptions,
) (*PageResult[T], error) {
	op := opts.Operation
	if op == "" {
		op = "paginate"
	}
	e.logger.Debugw("Paginate called", "operation", op, "offset", page.Offset, "limit", page.Limit)

	if err := page.Validate(); err != nil {
		e.logger.Debugw("Paginate rejected page request", "operation", op, "error", err)
		return nil, err
	}

	q := ApplyOrders(Apply(src.From(e.DB(ctx)), filter).Select(proj.Select()), orders).
		Offset(page.Offset).
		Limit(page.Limit)

	content, err := fetch(e, op+"_content", q, proj)
	if err != nil {
		return nil, err
	}

	total, counted, err := pageTotal(ctx, e, op, src, filter, page, len(content), opts.SkipCountWhenPossible)
	if err != nil {
		return nil, err
	}
	if !counted {
		e.recorder.CountSkipped(op)
	}

	e.logger.Debugw("Paginate completed",
		"operation", op,
		"count", len(content),
		"total", total,
		"count_query", counted,
	)
	return &PageResult[T]{
		Content: content,
		Total:   total,
		Size:    page.Limit,
		Offset:  page.Offset,
	}, nil
}

// pageTotal returns the total row count and whether a count query was issued.
func pageTotal(
	ctx context.Context,
	e *Executor,
	op string,
	src Source,
	filter Expr,
	page PageRequest,
	fetched int,
	skipWhenPossible bool,
) (int64, bool, error) {
	if skipWhenPossible && fetched < page.Limit {
		if page.Offset == 0 {
			return int64(fetched), false, nil
		}
		if fetched > 0 {
			return int64(page.Offset + fetched), false, nil
		}
	}

	var total int64
	start := time.Now()
	err := Apply(src.From(e.DB(ctx)), filter).Count(&total).Error
	e.recorder.ObserveQuery(op+"_count", time.Since(start), err)
	if err != nil {
		e.logger.Errorw("Paginate count query error", "operation", op, "error", err)
		return 0, true, err
	}
	return total, true, nil
}

func fetch[T any](e *Executor, operation string, q *gorm.DB, proj Projection[T]) ([]T, error) {
	var rows []map[string]any
	start := time.Now()
	err := q.Find(&rows).Error
	e.recorder.ObserveQuery(operation, time.Since(start), err)
	if err != nil {
		e.logger.Errorw("query database error", "operation", operation, "error", err)
		return nil, err
	}

	converted := make([]Row, len(rows))
	for i, r := range rows {
		converted[i] = Row(r)
	}

	items, err := proj.Map(converted)
	if err != nil {
		e.logger.Errorw("query projection error", "operation", operation, "error", err)
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	return items, nil
}
