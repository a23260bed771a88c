// Package models contains data types and constants for the chat backend.
package models

// Backend defaults
const (
	DefaultEndpoint       = "http://localhost:8080/chat"
	DefaultTimeoutSeconds = 60
	ContentTypeJSON       = "application/json"
)

// ApologyMessage is shown as the assistant reply whenever an exchange fails.
const ApologyMessage = "I apologize, but I encountered an error. Please try again."

// DefaultHeaders returns the headers sent with every chat request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": ContentTypeJSON,
		"Accept":       ContentTypeJSON,
		"User-Agent":   "chatwidget",
	}
}
