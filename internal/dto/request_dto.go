package dto

type SubmitQuizRequest struct {
	Answers map[string]interface{} `json:"answers" binding:"required"`
}

type AttachEmailRequest struct {
	Email string `json:"email" binding:"required,email,max=254"`
}

type SubscribeRequest struct {
	Email  string `json:"email" binding:"required,email,max=254"`
	Source string `json:"source" binding:"omitempty,max=64"`
}

type UnsubscribeRequest struct {
	Token string `json:"token" binding:"required,uuid"`
}

type LoginRequest struct {
	Email     string `json:"email" binding:"required,max=254"`
	Password  string `json:"password" binding:"required,max=512"`
	SecretKey string `json:"secret_key" binding:"max=512"`
}
