// Package model provides domain models and DTOs for member module.
package model

// Member represents a member entity in the system.
// Matches the members table schema.
type Member struct {
	ID       int64   `gorm:"primaryKey;column:member_id;autoIncrement"    json:"id"`
	Username *string `gorm:"column:username;type:varchar(255)"            json:"username"`
	Age      int     `gorm:"column:age;not null"                          json:"age"`
	TeamID   *int64  `gorm:"column:team_id;index:idx_members_team_id"     json:"team_id"`
}

// TableName specifies the table name for GORM.
func (Member) TableName() string {
	return "members"
}

// NewMember builds a member with a username and no team.
func NewMember(username string, age int) *Member {
	return &Member{Username: &username, Age: age}
}
