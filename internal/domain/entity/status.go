package entity

type AutomationStatus string

const (
	StatusSuccess                   AutomationStatus = "success"
	StatusFailed                    AutomationStatus = "failed"
	StatusTimeout                   AutomationStatus = "timeout"
	StatusCaptchaRequired           AutomationStatus = "captcha_required"
	StatusEmailVerificationRequired AutomationStatus = "email_verification_required"
	StatusPhoneVerificationRequired AutomationStatus = "phone_verification_required"
	StatusAccountExists             AutomationStatus = "account_exists"
	StatusInvalidCredentials        AutomationStatus = "invalid_credentials"
	StatusNetworkError              AutomationStatus = "network_error"
	StatusUnknownError              AutomationStatus = "unknown_error"
)

var statusLabels = map[AutomationStatus]string{
	StatusSuccess:                   "Success",
	StatusFailed:                    "Failed",
	StatusTimeout:                   "Timeout",
	StatusCaptchaRequired:           "CAPTCHA required",
	StatusEmailVerificationRequired: "Email verification required",
	StatusPhoneVerificationRequired: "Phone verification required",
	StatusAccountExists:             "Account already exists",
	StatusInvalidCredentials:        "Invalid credentials",
	StatusNetworkError:              "Network error",
	StatusUnknownError:              "Unknown error",
}

// AllStatuses returns every status in declaration order.
func AllStatuses() []AutomationStatus {
	return []AutomationStatus{
		StatusSuccess,
		StatusFailed,
		StatusTimeout,
		StatusCaptchaRequired,
		StatusEmailVerificationRequired,
		StatusPhoneVerificationRequired,
		StatusAccountExists,
		StatusInvalidCredentials,
		StatusNetworkError,
		StatusUnknownError,
	}
}

func (s AutomationStatus) String() string {
	return string(s)
}

func (s AutomationStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label is the human readable form shown by the console and the HTTP API.
func (s AutomationStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// NeedsManualIntervention reports whether a human has to finish the flow.
func (s AutomationStatus) NeedsManualIntervention() bool {
	switch s {
	case StatusCaptchaRequired, StatusEmailVerificationRequired, StatusPhoneVerificationRequired:
		return true
	}
	return false
}

// IsHardFailure is true for outcomes rendered as errors rather than information.
func (s AutomationStatus) IsHardFailure() bool {
	switch s {
	case StatusFailed, StatusTimeout, StatusNetworkError, StatusUnknownError:
		return true
	}
	return false
}
