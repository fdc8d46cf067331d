package errors

// ErrorResponse is the JSON body the API renders for a failed request
type ErrorResponse struct {
	Success   bool        `json:"success"`
	Error     ErrorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorDetail carries the display hint, the machine code and any reportable details
type ErrorDetail struct {
	Message string         `json:"message"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// NewErrorResponse builds the response for err with an already resolved display message
func NewErrorResponse(err error, message string, details map[string]any, requestID string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Message: message,
			Code:    CodeFromErr(err),
			Details: details,
		},
		RequestID: requestID,
	}
}
