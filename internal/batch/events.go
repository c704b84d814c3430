package batch

// teamPayload is the payload of team outcome events.
type teamPayload struct {
	Team       string `json:"team"`
	Year       int    `json:"year"`
	Status     Status `json:"status"`
	Location   string `json:"location,omitempty"`
	Rows       int    `json:"rows"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// runPayload is the payload of the run completion event.
type runPayload struct {
	Year      int `json:"year"`
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Errored   int `json:"errored"`
}
