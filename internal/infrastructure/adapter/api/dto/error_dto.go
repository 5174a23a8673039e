package dto

// ErrorResponse is the uniform error envelope of the merchant API
type ErrorResponse struct {
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}
