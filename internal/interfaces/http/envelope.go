package http

import "admisiones-bot/internal/entities"

// WebhookPayload is the Messenger delivery envelope: a list of entries,
// each carrying a list of messaging events.
type WebhookPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID        string           `json:"id"`
	Time      int64            `json:"time"`
	Messaging []MessagingEvent `json:"messaging"`
}

// MessagingEvent is one event inside an entry. Exactly one of Message
// and Postback is set for the kinds we handle; anything else normalizes
// to KindOther.
type MessagingEvent struct {
	Sender    Participant      `json:"sender"`
	Recipient Participant      `json:"recipient"`
	Timestamp int64            `json:"timestamp"`
	Message   *ReceivedMessage `json:"message"`
	Postback  *Postback        `json:"postback"`
}

type Participant struct {
	ID string `json:"id"`
}

type ReceivedMessage struct {
	MID    string `json:"mid"`
	Text   string `json:"text"`
	IsEcho bool   `json:"is_echo"`
}

type Postback struct {
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

// Normalize flattens the event into the internal shape, defaulting
// every optional field.
func (e MessagingEvent) Normalize() entities.InboundEvent {
	ev := entities.InboundEvent{
		SenderID: e.Sender.ID,
		Kind:     entities.KindOther,
	}
	switch {
	case e.Message != nil:
		ev.Kind = entities.KindMessage
		ev.MessageID = e.Message.MID
		ev.Text = e.Message.Text
		ev.IsEcho = e.Message.IsEcho
	case e.Postback != nil:
		ev.Kind = entities.KindPostback
	}
	return ev
}
