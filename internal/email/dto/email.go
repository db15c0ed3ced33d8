package dto

type RepliesRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

type RewriteRequest struct {
	Text  string `json:"text" binding:"required"`
	Draft string `json:"draft" binding:"required"`
	Tone  string `json:"tone" binding:"required"`
}

type TextRequest struct {
	Text string `json:"text" binding:"required"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}
