package entities

// EventKind classifies a messaging event from the platform envelope.
type EventKind string

const (
	KindMessage  EventKind = "message"
	KindPostback EventKind = "postback"
	KindOther    EventKind = "other"
)

// InboundEvent is one normalized messaging event, derived per request
// from the Messenger delivery payload and discarded after handling.
type InboundEvent struct {
	SenderID  string
	MessageID string
	Text      string
	IsEcho    bool
	Kind      EventKind
}

// OutboundReply carries a single reply back to the platform user.
// It is sent once and never retried.
type OutboundReply struct {
	RecipientID string
	Text        string
}
