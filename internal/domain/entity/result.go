package entity

type AutomationResult struct {
	Status     AutomationStatus `json:"status"`
	Message    string           `json:"message"`
	Data       map[string]any   `json:"data,omitempty"`
	Screenshot string           `json:"screenshot,omitempty"`
}

func NewResult(status AutomationStatus, message string) AutomationResult {
	return AutomationResult{
		Status:  status,
		Message: message,
		Data:    make(map[string]any),
	}
}

func (r AutomationResult) WithData(data map[string]any) AutomationResult {
	merged := make(map[string]any, len(r.Data)+len(data))
	for k, v := range r.Data {
		merged[k] = v
	}
	for k, v := range data {
		merged[k] = v
	}
	r.Data = merged
	return r
}

func (r AutomationResult) WithScreenshot(path string) AutomationResult {
	r.Screenshot = path
	return r
}

func (r AutomationResult) IsSuccess() bool {
	return r.Status == StatusSuccess
}

func (r AutomationResult) NeedsManualIntervention() bool {
	return r.Status.NeedsManualIntervention()
}
