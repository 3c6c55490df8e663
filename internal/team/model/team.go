package model

// Team represents a team entity in the system.
// Matches the teams table schema.
type Team struct {
	ID   int64  `gorm:"primaryKey;column:team_id;autoIncrement"   json:"id"`
	Name string `gorm:"column:name;type:varchar(255);not null;uniqueIndex" json:"name"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}
