package models

// APIResponse is the uniform JSON envelope returned by every endpoint.
type APIResponse struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Count   *int              `json:"count,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// OK builds a success envelope wrapping the provided data.
func OK(data any, message string) APIResponse {
	return APIResponse{Success: true, Data: data, Message: message}
}

// OKList builds a success envelope for list responses, carrying the element
// count alongside the data.
func OKList(data any, count int) APIResponse {
	return APIResponse{Success: true, Data: data, Count: &count}
}

// Fail builds a failure envelope with a human-readable message.
func Fail(message string) APIResponse {
	return APIResponse{Success: false, Message: message}
}

// FailFields builds a failure envelope carrying field-level validation
// errors.
func FailFields(message string, fields map[string]string) APIResponse {
	return APIResponse{Success: false, Message: message, Errors: fields}
}
