package models

import "time"

// StatusCounts is a per-status breakdown for one record collection.
type StatusCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Today    int64 `json:"today"`
}

// StatsSnapshot is the dashboard summary computed at AsOf. Every counter
// defaults to zero; failed counters are listed in Errors and flag Partial.
type StatsSnapshot struct {
	AsOf time.Time `json:"as_of"`

	BirthRecords        int64 `json:"birthRecords"`
	TodaysBirthRequests int64 `json:"todaysBirthRequests"`
	IDRecords           int64 `json:"idRecords"`
	TodaysIDRequests    int64 `json:"todaysIDRequests"`
	DeathRecords        int64 `json:"deathRecords"`
	TodaysDeathRequests int64 `json:"todaysDeathRequests"`

	VerifiedUsers        int64 `json:"verifiedUsers"`
	RejectedCases        int64 `json:"rejectedCases"`
	DocsAwaitingApproval int64 `json:"docsAwaitingApproval"`
	DocsAboutToExpire    int64 `json:"docsAboutToExpire"`

	NewUsersToday  int64          `json:"newUsersToday"`
	TotalAdmins    int64          `json:"totalAdmins"`
	TotalReviewers int64          `json:"totalReviewers"`
	TotalUsers     int64          `json:"totalUsers"`
	UsersByRole    map[Role]int64 `json:"usersByRole"`

	Male   int64 `json:"male"`
	Female int64 `json:"female"`

	Births  StatusCounts `json:"births"`
	IDCards StatusCounts `json:"idCards"`

	Partial bool     `json:"partial"`
	Errors  []string `json:"errors,omitempty"`
}
