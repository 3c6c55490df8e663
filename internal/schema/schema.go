// Package schema declares the tables, columns and joins shared by every
// query over members and teams.
package schema

import "github.com/festy23/querydsl_study/internal/query"

// Table names.
const (
	TeamsTable   = "teams"
	MembersTable = "members"
)

// Team columns.
var (
	TeamID   = query.Column{Table: TeamsTable, Name: "team_id"}
	TeamName = query.Column{Table: TeamsTable, Name: "name"}
)

// Member columns.
var (
	MemberID       = query.Column{Table: MembersTable, Name: "member_id"}
	MemberUsername = query.Column{Table: MembersTable, Name: "username"}
	MemberAge      = query.Column{Table: MembersTable, Name: "age"}
	MemberTeamID   = query.Column{Table: MembersTable, Name: "team_id"}
)

// Sources.
var (
	// Members selects members only.
	Members = query.Source{Table: MembersTable}

	// MembersWithTeam selects members with their team, keeping members without one.
	MembersWithTeam = query.Source{
		Table: MembersTable,
		Joins: []string{"LEFT JOIN teams ON teams.team_id = members.team_id"},
	}

	// MembersInTeam selects only members that belong to a team.
	MembersInTeam = query.Source{
		Table: MembersTable,
		Joins: []string{"INNER JOIN teams ON teams.team_id = members.team_id"},
	}
)

// MemberSortFields maps public sort keys to member search columns.
var MemberSortFields = map[string]query.Column{
	"id":       MemberID,
	"username": MemberUsername,
	"age":      MemberAge,
	"teamName": TeamName,
}
