package repository

import (
	"github.com/festy23/querydsl_study/internal/member/model"
	"github.com/festy23/querydsl_study/internal/query"
	"github.com/festy23/querydsl_study/internal/schema"
)

// MemberTeamProjection maps a member left-joined with its team.
var MemberTeamProjection = query.Projection[model.MemberTeamDto]{
	Fields: []query.Field{
		query.As(schema.MemberID, "member_id"),
		query.As(schema.MemberUsername, "username"),
		query.As(schema.MemberAge, "age"),
		query.As(schema.TeamID, "team_id"),
		query.As(schema.TeamName, "team_name"),
	},
	Build: func(r query.Row) (model.MemberTeamDto, error) {
		rd := r.Reader()
		dto := model.MemberTeamDto{
			MemberID: rd.Int64("member_id"),
			Username: rd.NullString("username"),
			Age:      rd.Int("age"),
			TeamID:   rd.NullInt64("team_id"),
			TeamName: rd.NullString("team_name"),
		}
		return dto, rd.Err()
	},
}

// MemberProjection maps id, username and age, all required.
var MemberProjection = query.Projection[model.MemberDto]{
	Fields: []query.Field{
		query.As(schema.MemberID, "id"),
		query.As(schema.MemberUsername, "username"),
		query.As(schema.MemberAge, "age"),
	},
	Build: func(r query.Row) (model.MemberDto, error) {
		rd := r.Reader()
		dto := model.MemberDto{
			ID:       rd.Int64("id"),
			Username: rd.String("username"),
			Age:      rd.Int("age"),
		}
		if err := rd.Err(); err != nil {
			return model.MemberDto{}, err
		}
		return dto, nil
	},
}

// UserProjection selects username as name.
var UserProjection = query.Projection[model.UserDto]{
	Fields: []query.Field{
		query.As(schema.MemberUsername, "name"),
		query.As(schema.MemberAge, "age"),
	},
	Build: func(r query.Row) (model.UserDto, error) {
		rd := r.Reader()
		dto := model.UserDto{
			Name: rd.NullString("name"),
			Age:  rd.Int("age"),
		}
		return dto, rd.Err()
	},
}

var memberEntityProjection = query.Projection[model.Member]{
	Fields: []query.Field{
		query.As(schema.MemberID, "member_id"),
		query.As(schema.MemberUsername, "username"),
		query.As(schema.MemberAge, "age"),
		query.As(schema.MemberTeamID, "team_id"),
	},
	Build: func(r query.Row) (model.Member, error) {
		rd := r.Reader()
		m := model.Member{
			ID:       rd.Int64("member_id"),
			Username: rd.NullString("username"),
			Age:      rd.Int("age"),
			TeamID:   rd.NullInt64("team_id"),
		}
		return m, rd.Err()
	},
}
