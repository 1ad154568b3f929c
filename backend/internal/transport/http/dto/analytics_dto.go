package dto

type GrowthPoint struct {
	Date     string `json:"date"`
	Users    int64  `json:"users"`
	NewUsers int64  `json:"new_users"`
}

type RevenuePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type PlanCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type ModerationStats struct {
	Pending      int64   `json:"pending"`
	Approved     int64   `json:"approved"`
	Rejected     int64   `json:"rejected"`
	TotalFlags   int64   `json:"total_flags"`
	ApprovalRate float64 `json:"approval_rate"`
}

type AnalyticsResponse struct {
	Growth     []GrowthPoint   `json:"growth"`
	Revenue    []RevenuePoint  `json:"revenue"`
	Breakdown  []PlanCount     `json:"breakdown"`
	Moderation ModerationStats `json:"moderation"`
	Failed     []string        `json:"failed"`
}

type HealthResponse struct {
	OK       bool     `json:"ok"`
	Degraded []string `json:"degraded"`
}
