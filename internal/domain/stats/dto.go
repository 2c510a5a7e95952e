package stats

// Hotspot is a location bucket ranked by non-invalid report count
type Hotspot struct {
	LocationText string `db:"location_text" json:"location_text"`
	ReportCount  int64  `db:"report_count" json:"report_count"`
}

// Snapshot is the aggregate stats payload
type Snapshot struct {
	TotalReports     int64      `json:"total_reports"`
	ActiveReports    int64      `json:"active_reports"`
	CompletedTasks   int64      `json:"completed_tasks"`
	VolunteerCount   int64      `json:"volunteer_count"`
	LocationHotspots []*Hotspot `json:"location_hotspots"`
}
