package model

import "strings"

// SearchCondition holds optional member search criteria.
// Empty or blank strings and nil bounds are absent.
type SearchCondition struct {
	Username string
	TeamName string
	AgeGoe   *int
	AgeLoe   *int
}

// HasUsername reports whether the username criterion is present.
func (c SearchCondition) HasUsername() bool {
	return strings.TrimSpace(c.Username) != ""
}

// HasTeamName reports whether the team name criterion is present.
func (c SearchCondition) HasTeamName() bool {
	return strings.TrimSpace(c.TeamName) != ""
}

// IsEmpty reports whether no criterion is present.
func (c SearchCondition) IsEmpty() bool {
	return !c.HasUsername() && !c.HasTeamName() && c.AgeGoe == nil && c.AgeLoe == nil
}
