// Package model provides data transfer objects for statistics module.
package model

// MemberStatistics aggregates the ages of all members.
type MemberStatistics struct {
	Count int64   `json:"count"`
	Sum   int64   `json:"sum"`
	Avg   float64 `json:"avg"`
	Max   int     `json:"max"`
	Min   int     `json:"min"`
}

// MemberStatisticsResponse represents response for member statistics.
type MemberStatisticsResponse struct {
	Statistics MemberStatistics `json:"statistics"`
}

// TeamAgeStatistics is the average member age of one team.
type TeamAgeStatistics struct {
	TeamName   string  `json:"teamName"`
	AverageAge float64 `json:"averageAge"`
}

// TeamStatisticsResponse represents response for per-team statistics.
type TeamStatisticsResponse struct {
	Teams []TeamAgeStatistics `json:"teams"`
	Total int                 `json:"total"`
}
