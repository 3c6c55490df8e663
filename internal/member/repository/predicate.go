package repository

import (
	"strings"

	"github.com/festy23/querydsl_study/internal/member/model"
	"github.com/festy23/querydsl_study/internal/query"
	"github.com/festy23/querydsl_study/internal/schema"
)

// BuildPredicate converts a search condition into a filter over members
// left-joined with teams. Absent criteria add no constraint, so the empty
// condition matches every row.
func BuildPredicate(cond model.SearchCondition) query.Expr {
	return query.And(
		usernameEq(cond.Username),
		teamNameEq(cond.TeamName),
		ageBetween(cond.AgeGoe, cond.AgeLoe),
	)
}

func usernameEq(username string) query.Expr {
	if strings.TrimSpace(username) == "" {
		return nil
	}
	return query.Eq(schema.MemberUsername, username)
}

func teamNameEq(teamName string) query.Expr {
	if strings.TrimSpace(teamName) == "" {
		return nil
	}
	return query.Eq(schema.TeamName, teamName)
}

func ageBetween(goe, loe *int) query.Expr {
	if goe == nil && loe == nil {
		return nil
	}
	var minAge, maxAge any
	if goe != nil {
		minAge = *goe
	}
	if loe != nil {
		maxAge = *loe
	}
	return query.Range(schema.MemberAge, minAge, maxAge)
}
