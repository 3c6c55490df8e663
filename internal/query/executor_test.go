package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testShelf struct {
	ShelfID int64  `gorm:"primaryKey;column:shelf_id;autoIncrement"`
	Name    string `gorm:"column:name;not null"`
}

func (testShelf) TableName() string { return "shelves" }

type testItem struct {
	ItemID  int64   `gorm:"primaryKey;column:item_id;autoIncrement"`
	Name    *string `gorm:"column:name"`
	Qty     int     `gorm:"column:qty;not null"`
	ShelfID *int64  `gorm:"column:shelf_id"`
}

func (testItem) TableName() string { return "items" }

type recordedQuery struct {
	operation string
	err       error
}

type spyRecorder struct {
	queries []recordedQuery
	skipped []string
	rows    map[string]int64
}

func (s *spyRecorder) ObserveQuery(operation string, _ time.Duration, err error) {
	s.queries = append(s.queries, recordedQuery{operation: operation, err: err})
}

func (s *spyRecorder) CountSkipped(operation string) {
	s.skipped = append(s.skipped, operation)
}

func (s *spyRecorder) RowsAffected(operation string, n int64) {
	if s.rows == nil {
		s.rows = map[string]int64{}
	}
	s.rows[operation] += n
}

var (
	colItemShelf = Column{Table: "items", Name: "shelf_id"}
	colShelfID   = Column{Table: "shelves", Name: "shelf_id"}

	itemSource = Source{
		Table: "items",
		Joins: []string{"LEFT JOIN shelves ON shelves.shelf_id = items.shelf_id"},
	}

	itemShelfProjection = Projection[itemShelfDto]{
		Fields: []Field{As(colID, "id"), As(colName, ""), As(colQty, ""), As(colShelfID, "shelf_id"), As(colShelf, "shelf_name")},
		Build: func(r Row) (itemShelfDto, error) {
			rd := r.Reader()
			dto := itemShelfDto{
				ID:        rd.Int64("id"),
				Name:      rd.NullString("name"),
				Qty:       rd.Int("qty"),
				ShelfID:   rd.NullInt64("shelf_id"),
				ShelfName: rd.NullString("shelf_name"),
			}
			return dto, rd.Err()
		},
	}
)

type itemShelfDto struct {
	ID        int64
	Name      *string
	Qty       int
	ShelfID   *int64
	ShelfName *string
}

func strPtr(s string) *string { return &s }

func setupExecutorDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&testShelf{}, &testItem{}))

	s1 := testShelf{Name: "s1"}
	s2 := testShelf{Name: "s2"}
	require.NoError(t, db.Create(&s1).Error)
	require.NoError(t, db.Create(&s2).Error)

	items := []testItem{
		{Name: strPtr("i1"), Qty: 10, ShelfID: &s1.ShelfID},
		{Name: strPtr("i2"), Qty: 20, ShelfID: &s1.ShelfID},
		{Name: strPtr("i3"), Qty: 30, ShelfID: &s2.ShelfID},
		{Name: strPtr("i4"), Qty: 40, ShelfID: &s2.ShelfID},
		{Name: nil, Qty: 50},
	}
	require.NoError(t, db.Create(&items).Error)

	return db
}

func names(items []itemShelfDto) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.Name == nil {
			out = append(out, "<nil>")
			continue
		}
		out = append(out, *it.Name)
	}
	return out
}

func TestFind(t *testing.T) {
	ctx := context.Background()

	t.Run("empty filter returns every row", func(t *testing.T) {
		db := setupExecutorDB(t)
		ex := NewExecutor(db, zap.NewNop().Sugar(), nil)

		items, err := Find(ctx, ex, "find", itemSource, itemShelfProjection, And(), []Order{OrderAsc(colID)}, 0)

		require.NoError(t, err)
		assert.Equal(t, []string{"i1", "i2", "i3", "i4", "<nil>"}, names(items))
	})

	t.Run("left join keeps rows without shelf", func(t *testing.T) {
		db := setupExecutorDB(t)
		ex := NewExecutor(db, zap.NewNop().Sugar(), nil)

		items, err := Find(ctx, ex, "find", itemSource, itemShelfProjection, Eq(colItemShelf, nil), nil, 0)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Nil(t, items[0].Name)
		assert.Nil(t, items[0].ShelfID)
		assert.Nil(t, items[0].ShelfName)
		assert.Equal(t, 50, items[0].Qty)
	})

	t.Run("conjunction of join and range", func(t *testing.T) {
		db := setupExecutorDB(t)
		ex := NewExecutor(db, zap.NewNop().Sugar(), nil)

		filter := And(Eq(colShelf, "s2"), Range(colQty, 35, 40))
		items, err := Find(ctx, ex, "find", itemSource, itemShelfProjection, filter, nil, 0)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "i4", *items[0].Name)
		assert.Equal(t, "s2", *items[0].ShelfName)
	})

	t.Run("nulls last ordering", func(t *testing.T) {
		db := setupExecutorDB(t)
		ex := NewExecutor(db, zap.NewNop().Sugar(), nil)

		orders := []Order{OrderDesc(colName).WithNullsLast()}
		items, err := Find(ctx, ex, "find", itemSource, itemShelfProjection, nil, orders, 0)

		require.NoError(t, err)
		assert.Equal(t, []string{"i4", "i3", "i2", "i1", "<nil>"}, names(items))
	})

	t.Run("limit", func(t *testing.T) {
		db := setupExecutorDB(t)
		ex := NewExecutor(db, zap.NewNop().Sugar(), nil)

		items, err := Find(ctx, ex, "find", itemSource, itemShelfProjection, nil, []Order{OrderAsc(colID)}, 2)

		require.NoError(t, err)
		assert.Equal(t, []string{"i1", "i2"}, names(items))
	})

	t.Run("no rows yields empty slice", func(t *testing.T) {
		db := setupExecutorDB(t)
		ex := NewExecutor(db, zap.NewNop().Sugar(), nil)

		items, err := Find(ctx, ex, "find", itemSource, itemShelfProjection, Eq(colName, "none"), nil, 0)

		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})
}

func TestPaginate(t *testing.T) {
	ctx := context.Background()

	t.Run("middle page with total", func(t *testing.T) {
		db := setupExecutorDB(t)
		rec := &spyRecorder{}
		ex := NewExecutor(db, zap.NewNop().Sugar(), rec)

		filter := Gt(colQty, 0)
		orders := []Order{OrderDesc(colName).WithNullsLast()}
		page, err := Paginate(ctx, ex, itemSource, itemShelfProjection, filter, orders,
			PageRequest{Offset: 1, Limit: 2}, PageOptions{Operation: "items"})

		require.NoError(t, err)
		assert.Equal(t, []string{"i3", "i2"}, names(page.Content))
		assert.Equal(t, int64(5), page.Total)
		assert.Equal(t, 2, page.Size)
		assert.Equal(t, 1, page.Offset)
		assert.Equal(t, []recordedQuery{{operation: "items_content"}, {operation: "items_count"}}, rec.queries)
		assert.Empty(t, rec.skipped)
	})

	t.Run("count uses the same filter", func(t *testing.T) {
		db := setupExecutorDB(t)
		ex := NewExecutor(db, zap.NewNop().Sugar(), nil)

		page, err := Paginate(ctx, ex, itemSource, itemShelfProjection, Eq(colShelf, "s1"), nil,
			PageRequest{Offset: 0, Limit: 1}, PageOptions{})

		require.NoError(t, err)
		assert.Len(t, page.Content, 1)
		assert.Equal(t, int64(2), page.Total)
	})

	t.Run("count always issued without skip option", func(t *testing.T) {
		db := setupExecutorDB(t)
		rec := &spyRecorder{}
		ex := NewExecutor(db, zap.NewNop().Sugar(), rec)

		page, err := Paginate(ctx, ex, itemSource, itemShelfProjection, nil, nil,
			PageRequest{Offset: 0, Limit: 10}, PageOptions{Operation: "items"})

		require.NoError(t, err)
		assert.Equal(t, int64(5), page.Total)
		assert.Len(t, rec.queries, 2)
	})

	t.Run("skips count on a short first page", func(t *testing.T) {
		db := setupExecutorDB(t)
		rec := &spyRecorder{}
		ex := NewExecutor(db, zap.NewNop().Sugar(), rec)

		page, err := Paginate(ctx, ex, itemSource, itemShelfProjection, nil, nil,
			PageRequest{Offset: 0, Limit: 10}, PageOptions{Operation: "items", SkipCountWhenPossible: true})

		require.NoError(t, err)
		assert.Equal(t, int64(5), page.Total)
		assert.Equal(t, []recordedQuery{{operation: "items_content"}}, rec.queries)
		assert.Equal(t, []string{"items"}, rec.skipped)
	})

	t.Run("skips count on a short later page", func(t *testing.T) {
		db := setupExecutorDB(t)
		rec := &spyRecorder{}
		ex := NewExecutor(db, zap.NewNop().Sugar(), rec)

		page, err := Paginate(ctx, ex, itemSource, itemShelfProjection, nil, []Order{OrderAsc(colID)},
			PageRequest{Offset: 4, Limit: 2}, PageOptions{Operation: "items", SkipCountWhenPossible: true})

		require.NoError(t, err)
		assert.Len(t, page.Content, 1)
		assert.Equal(t, int64(5), page.Total)
		assert.Len(t, rec.queries, 1)
	})

	t.Run("counts when a full page may have successors", func(t *testing.T) {
		db := setupExecutorDB(t)
		rec := &spyRecorder{}
		ex := NewExecutor(db, zap.NewNop().Sugar(), rec)

		page, err := Paginate(ctx, ex, itemSource, itemShelfProjection, nil, nil,
			PageRequest{Offset: 0, Limit: 2}, PageOptions{Operation: "items", SkipCountWhenPossible: true})

		require.NoError(t, err)
		assert.Equal(t, int64(5), page.Total)
		assert.Len(t, rec.queries, 2)
		assert.Empty(t, rec.skipped)
	})

	t.Run("counts when page is past the end", func(t *testing.T) {
		db := setupExecutorDB(t)
		ex := NewExecutor(db, zap.NewNop().Sugar(), nil)

		page, err := Paginate(ctx, ex, itemSource, itemShelfProjection, nil, nil,
			PageRequest{Offset: 50, Limit: 2}, PageOptions{SkipCountWhenPossible: true})

		require.NoError(t, err)
		assert.Empty(t, page.Content)
		assert.Equal(t, int64(5), page.Total)
	})

	t.Run("invalid page request issues no query", func(t *testing.T) {
		db := setupExecutorDB(t)
		rec := &spyRecorder{}
		ex := NewExecutor(db, zap.NewNop().Sugar(), rec)

		page, err := Paginate(ctx, ex, itemSource, itemShelfProjection, nil, nil,
			PageRequest{Offset: -1, Limit: 2}, PageOptions{})

		assert.Nil(t, page)
		assert.ErrorIs(t, err, ErrInvalidPageRequest)
		assert.Empty(t, rec.queries)
	})

	t.Run("store error propagates", func(t *testing.T) {
		db := setupExecutorDB(t)
		rec := &spyRecorder{}
		ex := NewExecutor(db, zap.NewNop().Sugar(), rec)

		src := Source{Table: "missing_table"}
		page, err := Paginate(ctx, ex, src, itemShelfProjection, nil, nil,
			PageRequest{Offset: 0, Limit: 2}, PageOptions{Operation: "items"})

		assert.Nil(t, page)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrInvalidPageRequest))
		require.Len(t, rec.queries, 1)
		assert.Error(t, rec.queries[0].err)
	})
}

func TestExecutor_Exec(t *testing.T) {
	ctx := context.Background()
	db := setupExecutorDB(t)
	rec := &spyRecorder{}
	ex := NewExecutor(db, zap.NewNop().Sugar(), rec)

	affected, err := ex.Exec(ctx, "bump_qty", func(db *gorm.DB) *gorm.DB {
		sql, args := Compile(Lt(colQty, 25))
		return db.Table("items").Where(sql, args...).Update("qty", gorm.Expr("qty + ?", 1))
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	assert.Equal(t, int64(2), rec.rows["bump_qty"])

	var qty []int
	require.NoError(t, db.Table("items").Order("item_id").Pluck("qty", &qty).Error)
	assert.Equal(t, []int{11, 21, 30, 40, 50}, qty)
}
