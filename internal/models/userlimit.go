package models

import "time"

// UserLimit is a per-owner posting quota override, keyed by the normalized
// 10-digit mobile number and assigned by an administrator. The enforced
// limit is always MaxPosts as stored, never re-derived from the tier name.
type UserLimit struct {
	Mobile    string    `json:"mobile"`
	MaxPosts  int       `json:"max_posts"`
	TierName  string    `json:"tier_name"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// AreaCount is one row of the top-areas dashboard aggregate.
type AreaCount struct {
	Area  string `json:"area"`
	Count int64  `json:"count"`
}

// DashboardStats summarises listing activity for the admin dashboard.
type DashboardStats struct {
	TotalAds  int64       `json:"totalAds"`
	TodaysAds int64       `json:"todaysAds"`
	TopAreas  []AreaCount `json:"topAreas"`
}
