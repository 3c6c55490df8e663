// Package repository provides data access layer for member module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/querydsl_study/internal/member/model"
	"github.com/festy23/querydsl_study/internal/query"
	"github.com/festy23/querydsl_study/internal/schema"
)

// Repository defines the interface for member data access operations.
type Repository interface {
	// Save inserts a member and assigns its ID.
	Save(ctx context.Context, member *model.Member) error

	// FindByID finds member by member_id. found is false when no row matches.
	FindByID(ctx context.Context, id int64) (member *model.Member, found bool, err error)

	// FindAll returns every member in insertion order.
	FindAll(ctx context.Context) ([]model.Member, error)

	// FindByUsername returns members with the given username.
	FindByUsername(ctx context.Context, username string) ([]model.Member, error)

	// List returns members matching filter in the given order.
	// The filter may reference team columns.
	List(ctx context.Context, filter query.Expr, orders []query.Order) ([]model.Member, error)

	// Search returns members with their team matching cond.
	Search(ctx context.Context, cond model.SearchCondition) ([]model.MemberTeamDto, error)

	// SearchPageSimple returns one page of Search and always runs the count query.
	SearchPageSimple(
		ctx context.Context,
		cond model.SearchCondition,
		orders []query.Order,
		page query.PageRequest,
	) (*model.SearchPage, error)

	// SearchPageComplex returns one page of Search and skips the count query
	// when the total follows from the page content.
	SearchPageComplex(
		ctx context.Context,
		cond model.SearchCondition,
		orders []query.Order,
		page query.PageRequest,
	) (*model.SearchPage, error)

	// FindMemberDtos returns every member with a username as a MemberDto.
	FindMemberDtos(ctx context.Context) ([]model.MemberDto, error)

	// FindUserDtos returns every member as a UserDto.
	FindUserDtos(ctx context.Context) ([]model.UserDto, error)

	// BulkRenameYoungerThan sets username on members younger than age.
	BulkRenameYoungerThan(ctx context.Context, age int, username string) (int64, error)

	// BulkAddAge adds delta to the age of every member.
	BulkAddAge(ctx context.Context, delta int) (int64, error)

	// BulkDeleteOlderThan deletes members older than age.
	BulkDeleteOlderThan(ctx context.Context, age int) (int64, error)
}

type repository struct {
	db     *gorm.DB
	exec   *query.Executor
	logger *zap.SugaredLogger
}

// New creates a new member repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger, recorder query.Recorder) Repository {
	return &repository{
		db:     db,
		exec:   query.NewExecutor(db, logger, recorder),
		logger: logger,
	}
}

// withDefaultOrder appends member_id ascending unless orders already sort by it,
// so that pages are stable and unordered searches follow insertion order.
func withDefaultOrder(orders []query.Order) []query.Order {
	for _, o := range orders {
		if o.Column == schema.MemberID {
			return orders
		}
	}
	out := make([]query.Order, 0, len(orders)+1)
	out = append(out, orders...)
	return append(out, query.OrderAsc(schema.MemberID))
}

// Save inserts a member and assigns its ID.
func (r *repository) Save(ctx context.Context, member *model.Member) error {
	r.logger.Debugw("Save called", "username", member.Username, "age", member.Age)

	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		r.logger.Errorw("Save database error", "error", err)
		return err
	}

	r.logger.Infow("Save completed", "member_id", member.ID)
	return nil
}

// FindByID finds member by member_id.
func (r *repository) FindByID(ctx context.Context, id int64) (*model.Member, bool, error) {
	r.logger.Debugw("FindByID called", "member_id", id)

	var member model.Member
	err := r.db.WithContext(ctx).
		Where(schema.MemberID.String()+" = ?", id).
		First(&member).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Debugw("FindByID member not found", "member_id", id)
			return nil, false, nil
		}
		r.logger.Errorw("FindByID database error", "member_id", id, "error", err)
		return nil, false, err
	}

	return &member, true, nil
}

// FindAll returns every member in insertion order.
func (r *repository) FindAll(ctx context.Context) ([]model.Member, error) {
	return r.List(ctx, nil, nil)
}

// FindByUsername returns members with the given username.
func (r *repository) FindByUsername(ctx context.Context, username string) ([]model.Member, error) {
	return r.List(ctx, query.Eq(schema.MemberUsername, username), nil)
}

// List returns members matching filter in the given order.
func (r *repository) List(ctx context.Context, filter query.Expr, orders []query.Order) ([]model.Member, error) {
	r.logger.Debugw("List called", "orders", len(orders))

	members, err := query.Find(ctx, r.exec, "member_list", schema.MembersWithTeam,
		memberEntityProjection, filter, withDefaultOrder(orders), 0)
	if err != nil {
		return nil, err
	}

	r.logger.Debugw("List completed", "count", len(members))
	return members, nil
}

// Search returns members with their team matching cond in insertion order.
func (r *repository) Search(ctx context.Context, cond model.SearchCondition) ([]model.MemberTeamDto, error) {
	r.logger.Debugw("Search called", "condition", cond)

	dtos, err := query.Find(ctx, r.exec, "member_search", schema.MembersWithTeam,
		MemberTeamProjection, BuildPredicate(cond), withDefaultOrder(nil), 0)
	if err != nil {
		return nil, err
	}

	r.logger.Debugw("Search completed", "count", len(dtos))
	return dtos, nil
}

// SearchPageSimple returns one page of Search and always runs the count query.
func (r *repository) SearchPageSimple(
	ctx context.Context,
	cond model.SearchCondition,
	orders []query.Order,
	page query.PageRequest,
) (*model.SearchPage, error) {
	return r.searchPage(ctx, cond, orders, page, query.PageOptions{
		Operation: "member_search_page_simple",
	})
}

// SearchPageComplex returns one page of Search and may skip the count query.
func (r *repository) SearchPageComplex(
	ctx context.Context,
	cond model.SearchCondition,
	orders []query.Order,
	page query.PageRequest,
) (*model.SearchPage, error) {
	return r.searchPage(ctx, cond, orders, page, query.PageOptions{
		Operation:             "member_search_page_complex",
		SkipCountWhenPossible: true,
	})
}

func (r *repository) searchPage(
	ctx context.Context,
	cond model.SearchCondition,
	orders []query.Order,
	page query.PageRequest,
	opts query.PageOptions,
) (*model.SearchPage, error) {
	r.logger.Debugw("SearchPage called", "operation", opts.Operation, "condition", cond,
		"offset", page.Offset, "limit", page.Limit)

	return query.Paginate(ctx, r.exec, schema.MembersWithTeam, MemberTeamProjection,
		BuildPredicate(cond), withDefaultOrder(orders), page, opts)
}

// FindMemberDtos returns every member with a username as a MemberDto.
func (r *repository) FindMemberDtos(ctx context.Context) ([]model.MemberDto, error) {
	r.logger.Debugw("FindMemberDtos called")

	return query.Find(ctx, r.exec, "member_dtos", schema.Members, MemberProjection,
		query.Ne(schema.MemberUsername, nil), withDefaultOrder(nil), 0)
}

// FindUserDtos returns every member as a UserDto.
func (r *repository) FindUserDtos(ctx context.Context) ([]model.UserDto, error) {
	r.logger.Debugw("FindUserDtos called")

	return query.Find(ctx, r.exec, "member_user_dtos", schema.Members, UserProjection,
		nil, withDefaultOrder(nil), 0)
}

// BulkRenameYoungerThan sets username on members younger than age.
func (r *repository) BulkRenameYoungerThan(ctx context.Context, age int, username string) (int64, error) {
	r.logger.Infow("BulkRenameYoungerThan called", "age", age, "username", username)

	return r.exec.Exec(ctx, "member_bulk_rename", func(db *gorm.DB) *gorm.DB {
		return query.Apply(db.Model(&model.Member{}), query.Lt(schema.MemberAge, age)).
			Update(schema.MemberUsername.Name, username)
	})
}

// BulkAddAge adds delta to the age of every member.
func (r *repository) BulkAddAge(ctx context.Context, delta int) (int64, error) {
	r.logger.Infow("BulkAddAge called", "delta", delta)

	return r.exec.Exec(ctx, "member_bulk_add_age", func(db *gorm.DB) *gorm.DB {
		return db.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Model(&model.Member{}).
			Update(schema.MemberAge.Name, gorm.Expr(schema.MemberAge.Name+" + ?", delta))
	})
}

// BulkDeleteOlderThan deletes members older than age.
func (r *repository) BulkDeleteOlderThan(ctx context.Context, age int) (int64, error) {
	r.logger.Infow("BulkDeleteOlderThan called", "age", age)

	return r.exec.Exec(ctx, "member_bulk_delete", func(db *gorm.DB) *gorm.DB {
		return query.Apply(db, query.Gt(schema.MemberAge, age)).Delete(&model.Member{})
	})
}
