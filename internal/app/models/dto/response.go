package dto

import "time"

// APIResponse is the envelope every JSON answer is wrapped in
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewSuccessResponse wraps data in a successful envelope
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// SuccessResponse represents a standard message-only payload
type SuccessResponse struct {
	Message string `json:"message"`
}

// FormDescription tells a client which fields a POST route expects.
type FormDescription struct {
	Action  string   `json:"action" example:"/login"`
	Method  string   `json:"method" example:"POST"`
	Enctype string   `json:"enctype,omitempty" example:"multipart/form-data"`
	Fields  []string `json:"fields"`
}

// LandingResponse is the payload of the public home page
type LandingResponse struct {
	Name  string        `json:"name" example:"Course Notes"`
	User  *UserResponse `json:"user,omitempty"`
	Links []string      `json:"links"`
}

// HealthResponse reports whether the store is reachable
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Store  string `json:"store" example:"postgres"`
}
