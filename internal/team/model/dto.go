// Package model provides domain models and DTOs for team module.
package model

// TeamMember represents a team member in API responses.
type TeamMember struct {
	MemberID int64   `json:"member_id"`
	Username *string `json:"username"`
	Age      int     `json:"age"`
}

// NewTeamMember describes a member created together with a team.
type NewTeamMember struct {
	Username string `json:"username"`
	Age      int    `json:"age" binding:"gte=0"`
}

// AddTeamRequest represents the request to create a team with optional members.
type AddTeamRequest struct {
	TeamName string          `json:"team_name" binding:"required"`
	Members  []NewTeamMember `json:"members"   binding:"dive"`
}

// TeamResponse represents a team with its members.
type TeamResponse struct {
	TeamID   int64        `json:"team_id"`
	TeamName string       `json:"team_name"`
	Members  []TeamMember `json:"members"`
}
