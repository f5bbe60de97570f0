package interfaces

import "context"

// AIClient generates a grounded reply for a user message.
type AIClient interface {
	GenerateReply(ctx context.Context, userText string) (string, error)
}

// Messenger delivers a reply back to the platform user.
type Messenger interface {
	SendMessage(ctx context.Context, recipientID, text string) error
}
