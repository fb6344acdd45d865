package events

// Event is anything that can be published to the integration bus.
type Event interface {
	// EventType becomes the NATS subject suffix, e.g. "analysis.completed"
	EventType() string
	Payload() interface{}
}

// AnalysisCompleted is emitted after an analysis report has been stored.
type AnalysisCompleted struct {
	ReportID   string `json:"report_id"`
	ClientID   string `json:"client_id"`
	Filename   string `json:"filename,omitempty"`
	ErrorCount int    `json:"error_count"`
	TipCount   int    `json:"tip_count"`
}

func (e AnalysisCompleted) EventType() string    { return "analysis.completed" }
func (e AnalysisCompleted) Payload() interface{} { return e }
