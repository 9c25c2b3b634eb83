package constants

// Remote API error codes. These identify specific failure scenarios when
// talking to the scouting data API so callers can branch without string
// matching on messages.
const (
	ErrCodeNetworkError      = "NETWORK_ERROR"
	ErrCodeBadStatus         = "BAD_STATUS"
	ErrCodeMalformedResponse = "MALFORMED_RESPONSE"
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
)

// Error Messages
// Human-readable messages corresponding to error codes

var apiErrorMessages = map[string]string{
	ErrCodeNetworkError:      "Unable to reach the scouting API. Please check your internet connection",
	ErrCodeBadStatus:         "The scouting API returned a non-success status",
	ErrCodeMalformedResponse: "The scouting API returned a response that could not be parsed",
	ErrCodeInvalidRequest:    "The request to the scouting API was malformed",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := apiErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}
