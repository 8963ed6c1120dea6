package models

// Stats summarises journaling consistency across all recorded dates.
type Stats struct {
	CurrentStreak  int `json:"currentStreak"`
	LongestStreak  int `json:"longestStreak"`
	TotalEntries   int `json:"totalEntries"`
	CompletionRate int `json:"completionRate"` // percentage, rounded
}
