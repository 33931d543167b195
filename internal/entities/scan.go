package entities

// ScanReport counts the outcome of a batch of synthesis runs.
type ScanReport struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}
