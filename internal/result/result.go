package result

// Severity values used by Error and Warning.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Error represents a payload or transport failure surfaced to a caller.
type Error struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	NodeID     string `json:"node_id,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Warning represents an advisory finding about a payload. Warnings never stop a render.
type Warning struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	NodeID     string `json:"node_id,omitempty"`
	Path       string `json:"path,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// NewWarning returns a Warning with the warning severity filled in.
func NewWarning(typ, nodeID, path, message, suggestion string) Warning {
	return Warning{
		Type: typ, Severity: SeverityWarning, NodeID: nodeID, Path: path,
		Message: message, Suggestion: suggestion,
	}
}
