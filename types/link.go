package types

// LinkRequest is the body of POST /link/ and the payload of worker messages.
type LinkRequest struct {
	Link string `json:"link" binding:"required"`
}

// LinkResponse carries the model's text unmodified.
type LinkResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}
