package dto

type ChatRequest struct {
	Message   string `json:"message" validate:"required,min=1,max=4000"`
	SessionId string `json:"session_id" validate:"required,min=1,max=64"`
}

type ChatResponse struct {
	Reply     string `json:"reply"`
	Language  string `json:"language"`
	SessionId string `json:"session_id"`
}

type ResetSessionRequest struct {
	SessionId string `json:"session_id" validate:"required,min=1,max=64"`
}

type SetApiKeyRequest struct {
	ApiKey string `json:"api_key" validate:"required,min=1"`
}
