package types

// AnalyzeRequest is the request body for POST /v1/analyze.
type AnalyzeRequest struct {
	// Text is the passage to analyze.
	Text string `json:"text"`
}

// AnalyzeResponse mirrors detector.Result plus the request correlation ID.
// The detector result marshals its own fields; this wrapper only exists to
// document the wire contract in one place.
type AnalyzeResponse struct {
	IsAIGenerated  bool               `json:"is_ai_generated"`
	Confidence     float64            `json:"confidence"`
	Metrics        map[string]float64 `json:"metrics"`
	Explanation    string             `json:"explanation"`
	Profile        string             `json:"profile"`
	ProfileVersion string             `json:"profile_version,omitempty"`
	Strategy       string             `json:"strategy"`
	WordCount      int                `json:"word_count"`
	SentenceCount  int                `json:"sentence_count"`
	RequestID      string             `json:"request_id,omitempty"`
}
