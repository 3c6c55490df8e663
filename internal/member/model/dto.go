package model

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/festy23/querydsl_study/internal/query"
)

// Count modes for paged search.
const (
	CountModeAlways = "always"
	CountModeAuto   = "auto"
)

// MemberTeamDto is a member row joined with its team.
// Team fields are nil for members without a team.
type MemberTeamDto struct {
	MemberID int64   `json:"memberId"`
	Username *string `json:"username"`
	Age      int     `json:"age"`
	TeamID   *int64  `json:"teamId"`
	TeamName *string `json:"teamName"`
}

// MemberDto is the full-field member projection.
type MemberDto struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Age      int    `json:"age"`
}

// UserDto exposes a member username under name.
type UserDto struct {
	Name *string `json:"name"`
	Age  int     `json:"age"`
}

// SearchRequest represents query parameters of GET /members/search.
type SearchRequest struct {
	Username  string `form:"username"`
	TeamName  string `form:"teamName"`
	AgeGoe    string `form:"ageGoe"`
	AgeLoe    string `form:"ageLoe"`
	Offset    int    `form:"offset"    validate:"gte=0"`
	Limit     int    `form:"limit"     validate:"gte=0"`
	Sort      string `form:"sort"`
	CountMode string `form:"countMode" validate:"omitempty,oneof=always auto"`
}

// Condition extracts the search criteria of the request.
// Blank age bounds are absent; malformed ones fail with ErrInvalidSearch.
func (r SearchRequest) Condition() (SearchCondition, error) {
	ageGoe, err := parseAge("ageGoe", r.AgeGoe)
	if err != nil {
		return SearchCondition{}, err
	}
	ageLoe, err := parseAge("ageLoe", r.AgeLoe)
	if err != nil {
		return SearchCondition{}, err
	}

	return SearchCondition{
		Username: r.Username,
		TeamName: r.TeamName,
		AgeGoe:   ageGoe,
		AgeLoe:   ageLoe,
	}, nil
}

func parseAge(field, value string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	age, err := cast.ToIntE(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", ErrInvalidSearch, field)
	}
	return &age, nil
}

// SearchPage is a page of search results.
type SearchPage = query.PageResult[MemberTeamDto]

// SearchResponse represents one page of member search results.
type SearchResponse struct {
	Content    []MemberTeamDto `json:"content"`
	Total      int64           `json:"total"`
	Offset     int             `json:"offset"`
	Size       int             `json:"size"`
	TotalPages int             `json:"totalPages"`
	HasNext    bool            `json:"hasNext"`
}

// NewSearchResponse converts a page result to its response form.
func NewSearchResponse(p *SearchPage) SearchResponse {
	content := p.Content
	if content == nil {
		content = []MemberTeamDto{}
	}
	return SearchResponse{
		Content:    content,
		Total:      p.Total,
		Offset:     p.Offset,
		Size:       p.Size,
		TotalPages: p.TotalPages(),
		HasNext:    p.HasNext(),
	}
}

// CreateMemberRequest represents the request to create a member.
type CreateMemberRequest struct {
	Username *string `json:"username"`
	Age      int     `json:"age"     binding:"gte=0"`
	TeamID   *int64  `json:"team_id"`
}

// BulkRenameRequest renames every member younger than Age.
type BulkRenameRequest struct {
	Age      int    `json:"age"      binding:"gte=0"`
	Username string `json:"username" binding:"required"`
}

// BulkAddAgeRequest adds Delta to every member age.
type BulkAddAgeRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// BulkDeleteRequest deletes every member older than Age.
type BulkDeleteRequest struct {
	Age int `json:"age" binding:"gte=0"`
}

// BulkResponse reports the number of rows a bulk operation changed.
type BulkResponse struct {
	Affected int64 `json:"affected"`
}
