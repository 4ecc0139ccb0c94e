package models

// InputType is the declared channel of an incoming support query.
type InputType string

const (
	InputTypeText  InputType = "text"
	InputTypeVoice InputType = "voice"
	InputTypeVideo InputType = "video"
)

// Valid reports whether the input type is one the pipeline can route.
func (t InputType) Valid() bool {
	switch t {
	case InputTypeText, InputTypeVoice, InputTypeVideo:
		return true
	}
	return false
}

// Issue is one of the fixed support issue categories.
type Issue string

const (
	IssueNoSound        Issue = "no_sound"
	IssueTVNotTurningOn Issue = "tv_not_turning_on"
	IssueSettings       Issue = "settings_issue"
	IssueErrorCode      Issue = "error_code"
	IssueUnknown        Issue = "unknown"
)

// ProcessRequest is the wire request from HTTP and NATS callers.
// For voice and video input, InputData carries base64-encoded bytes.
type ProcessRequest struct {
	SessionID string `json:"session_id,omitempty"`
	InputType string `json:"input_type"`
	InputData string `json:"input_data"`
}

// ProcessResponse is the wire response to HTTP and NATS callers.
type ProcessResponse struct {
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// HistoryResponse is the wire response of the session history endpoint.
type HistoryResponse struct {
	SessionID string `json:"session_id"`
	History   string `json:"history"`
}
