package model

// Report is the envelope written to outputs for one analyzed file. RunID
// and Size describe the run and the input, so they stay outside
// AnalysisResult.
type Report struct {
	RunID    string         `json:"run_id"`
	Filename string         `json:"filename"`
	Size     int64          `json:"size"`
	Analysis AnalysisResult `json:"analysis"`
	Summary  SummaryStats   `json:"summary"`
	Entries  []ParsedEntry  `json:"entries,omitempty"`
}
