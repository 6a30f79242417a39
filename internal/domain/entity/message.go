package entity

import (
	"strings"
)

// Telegram bot commands recognized by the hook pipeline.
const (
	CommandPrefix = "/"
	CommandStart  = "/start"
)

// Location is a geographic point shared by a user.
type Location struct {
	Latitude  float64
	Longitude float64
}

// MessageKind is the closed set of inbound message shapes the pipeline
// distinguishes between.
type MessageKind int

const (
	// MessageKindNone is a message without text and without a location.
	MessageKindNone MessageKind = iota
	// MessageKindCommand is a recognized bot command such as /start.
	MessageKindCommand
	// MessageKindText is free text, including unknown /commands.
	MessageKindText
	// MessageKindLocation is a shared geographic point.
	MessageKindLocation
)

// InboundMessage is the payload part of a webhook delivery. It is transient:
// only the sender identity is ever persisted.
type InboundMessage struct {
	ChatID   int64
	Text     string
	Location *Location
}

// Kind classifies the message. A location wins over accompanying text; an
// unknown command is treated as plain text so it terminates without a reply.
func (m *InboundMessage) Kind() MessageKind {
	switch {
	case m.Location != nil:
		return MessageKindLocation
	case m.Text == "":
		return MessageKindNone
	case strings.HasPrefix(m.Text, CommandPrefix) && m.Text == CommandStart:
		return MessageKindCommand
	default:
		return MessageKindText
	}
}
