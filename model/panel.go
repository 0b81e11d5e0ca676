package model

type PanelStatus string

const (
	PanelLoading   PanelStatus = "loading"
	PanelError     PanelStatus = "error"
	PanelPopulated PanelStatus = "populated"
)

// PanelState is a snapshot of what the repository panel displays
// Repositories is only set when Status is populated, ErrorMessage only when Status is error
type PanelState struct {
	Status       PanelStatus         `json:"status"`
	Account      string              `json:"account"`
	Limit        int                 `json:"limit"`
	Repositories []RepositorySummary `json:"repositories"`
	ErrorMessage string              `json:"error,omitempty"`
}

func (s PanelState) IsLoading() bool {
	return s.Status == PanelLoading
}
