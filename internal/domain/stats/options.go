package stats

// MediaInput is a monthly media submission. Nil metrics are missing.
type MediaInput struct {
	Instagram *int `json:"instagram"`
	Linkedin  *int `json:"linkedin"`
	Youtube   *int `json:"youtube"`
}

// DesignInput is a monthly design submission.
type DesignInput struct {
	Posters *int `json:"posters"`
}

// Overview is the dashboard summary built from the cached resources.
type Overview struct {
	Counters    Counters      `json:"counters"`
	Pending     int           `json:"pending"`
	Media       []MediaEntry  `json:"media"`
	MediaTrend  MediaTrends   `json:"media_trend"`
	Design      []DesignEntry `json:"design"`
	DesignTrend Direction     `json:"design_trend"`
	Events      []EventEntry  `json:"events"`
}
