package models

// AnalyzeRequest is the HTTP request body for on-demand analysis of a single
// remote image. The configuration uses the same shape as the persisted
// snapshot, with crop values given as percentages (0-100) like the settings
// file.
type AnalyzeRequest struct {
	ImageURL      string         `json:"image_url" binding:"required"`
	Configuration *Configuration `json:"configuration,omitempty"`
}

// ErrorResponse is the HTTP error body.
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
