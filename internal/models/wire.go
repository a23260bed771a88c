package models

// ChatRequest is the body POSTed to the chat endpoint
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatReply is the body returned by the chat endpoint on success
type ChatReply struct {
	Response string `json:"response"`
}
