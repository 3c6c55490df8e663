// Package service provides business logic layer for member module.
package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/querydsl_study/internal/config"
	"github.com/festy23/querydsl_study/internal/member/model"
	"github.com/festy23/querydsl_study/internal/member/repository"
	"github.com/festy23/querydsl_study/internal/query"
	"github.com/festy23/querydsl_study/internal/schema"
)

// Service defines the interface for member business logic operations.
type Service interface {
	// Create stores a new member.
	Create(ctx context.Context, req *model.CreateMemberRequest) (*model.Member, error)

	// Get returns a member by ID.
	Get(ctx context.Context, id int64) (*model.Member, error)

	// Search returns one page of members matching the request.
	Search(ctx context.Context, req *model.SearchRequest) (*model.SearchResponse, error)

	// MemberDtos returns the full-field projection of members.
	MemberDtos(ctx context.Context) ([]model.MemberDto, error)

	// UserDtos returns the renamed-field projection of members.
	UserDtos(ctx context.Context) ([]model.UserDto, error)

	// BulkRename renames members younger than the requested age.
	BulkRename(ctx context.Context, req *model.BulkRenameRequest) (*model.BulkResponse, error)

	// BulkAddAge adds a delta to every member age.
	BulkAddAge(ctx context.Context, req *model.BulkAddAgeRequest) (*model.BulkResponse, error)

	// BulkDelete deletes members older than the requested age.
	BulkDelete(ctx context.Context, req *model.BulkDeleteRequest) (*model.BulkResponse, error)
}

type service struct {
	repo       repository.Repository
	logger     *zap.SugaredLogger
	pagination config.PaginationConfig
	validate   *validator.Validate
}

// New creates a new member service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger, pagination config.PaginationConfig) Service {
	validate := validator.New()
	validate.RegisterTagNameFunc(formTagName)

	return &service{
		repo:       repo,
		logger:     logger,
		pagination: pagination,
		validate:   validate,
	}
}

// formTagName reports validation failures under the query parameter name.
func formTagName(fld reflect.StructField) string {
	if name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]; name != "" {
		return name
	}
	return fld.Name
}

// Create stores a new member.
func (s *service) Create(ctx context.Context, req *model.CreateMemberRequest) (*model.Member, error) {
	s.logger.Debugw("Create called", "username", req.Username, "age", req.Age, "team_id", req.TeamID)

	if req.Age < 0 {
		s.logger.Debugw("Create validation failed", "error", "negative age")
		return nil, model.ErrInvalidMember
	}

	member := &model.Member{Username: req.Username, Age: req.Age, TeamID: req.TeamID}
	if err := s.repo.Save(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			s.logger.Debugw("Create rejected unknown team", "team_id", req.TeamID)
			return nil, fmt.Errorf("%w: team does not exist", model.ErrInvalidMember)
		}
		s.logger.Errorw("Create failed", "error", err)
		return nil, err
	}

	s.logger.Infow("Create completed", "member_id", member.ID)
	return member, nil
}

// Get returns a member by ID.
func (s *service) Get(ctx context.Context, id int64) (*model.Member, error) {
	s.logger.Debugw("Get called", "member_id", id)

	member, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Errorw("Get failed", "member_id", id, "error", err)
		return nil, err
	}
	if !found {
		return nil, model.ErrMemberNotFound
	}

	return member, nil
}

// Search returns one page of members matching the request.
func (s *service) Search(ctx context.Context, req *model.SearchRequest) (*model.SearchResponse, error) {
	s.logger.Debugw("Search called", "request", req)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Debugw("Search validation failed", "error", err)
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidSearch, describeValidation(err))
	}

	cond, err := req.Condition()
	if err != nil {
		s.logger.Debugw("Search validation failed", "error", err)
		return nil, err
	}

	orders := query.ParseOrders(req.Sort, schema.MemberSortFields)
	page := query.PageRequest{Offset: req.Offset, Limit: s.pagination.Clamp(req.Limit)}

	search := s.repo.SearchPageComplex
	if req.CountMode == model.CountModeAlways {
		search = s.repo.SearchPageSimple
	}

	result, err := search(ctx, cond, orders, page)
	if err != nil {
		if errors.Is(err, query.ErrInvalidPageRequest) {
			return nil, fmt.Errorf("%w: %w", model.ErrInvalidSearch, err)
		}
		s.logger.Errorw("Search failed", "error", err)
		return nil, err
	}

	resp := model.NewSearchResponse(result)
	s.logger.Debugw("Search completed", "count", len(resp.Content), "total", resp.Total)
	return &resp, nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

// MemberDtos returns the full-field projection of members.
func (s *service) MemberDtos(ctx context.Context) ([]model.MemberDto, error) {
	dtos, err := s.repo.FindMemberDtos(ctx)
	if err != nil {
		s.logger.Errorw("MemberDtos failed", "error", err)
		return nil, err
	}
	return dtos, nil
}

// UserDtos returns the renamed-field projection of members.
func (s *service) UserDtos(ctx context.Context) ([]model.UserDto, error) {
	dtos, err := s.repo.FindUserDtos(ctx)
	if err != nil {
		s.logger.Errorw("UserDtos failed", "error", err)
		return nil, err
	}
	return dtos, nil
}

// BulkRename renames members younger than the requested age.
func (s *service) BulkRename(ctx context.Context, req *model.BulkRenameRequest) (*model.BulkResponse, error) {
	affected, err := s.repo.BulkRenameYoungerThan(ctx, req.Age, req.Username)
	if err != nil {
		s.logger.Errorw("BulkRename failed", "age", req.Age, "error", err)
		return nil, err
	}

	s.logger.Infow("BulkRename completed", "age", req.Age, "affected", affected)
	return &model.BulkResponse{Affected: affected}, nil
}

// BulkAddAge adds a delta to every member age.
func (s *service) BulkAddAge(ctx context.Context, req *model.BulkAddAgeRequest) (*model.BulkResponse, error) {
	affected, err := s.repo.BulkAddAge(ctx, req.Delta)
	if err != nil {
		s.logger.Errorw("BulkAddAge failed", "delta", req.Delta, "error", err)
		return nil, err
	}

	s.logger.Infow("BulkAddAge completed", "delta", req.Delta, "affected", affected)
	return &model.BulkResponse{Affected: affected}, nil
}

// BulkDelete deletes members older than the requested age.
func (s *service) BulkDelete(ctx context.Context, req *model.BulkDeleteRequest) (*model.BulkResponse, error) {
	affected, err := s.repo.BulkDeleteOlderThan(ctx, req.Age)
	if err != nil {
		s.logger.Errorw("BulkDelete failed", "age", req.Age, "error", err)
		return nil, err
	}

	s.logger.Infow("BulkDelete completed", "age", req.Age, "affected", affected)
	return &model.BulkResponse{Affected: affected}, nil
}
