package models

// DailyStats summarizes habit completion for one day
type DailyStats struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}
