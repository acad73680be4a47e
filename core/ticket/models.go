package ticket

import (
	"time"

	"github.com/pkg/errors"
)

// Ticket statuses.
const (
	StatusOpen       = "open"
	StatusInProgress = "in-progress"
	StatusClosed     = "closed"
)

// Conversation statuses (the chat view's vocabulary for the same state).
const (
	ConversationActive   = "active"
	ConversationResolved = "resolved"
)

// Message senders.
const (
	SenderAdmin   = "admin"   // a school admin writing in
	SenderSupport = "support" // the portal agent
)

var (
	// errors
	ErrNotFound     = errors.New("ticket not found")
	ErrEmptyMessage = errors.New("message text is empty")
	ErrTicketClosed = errors.New("ticket is closed")
)

// Message is one entry of a ticket's thread.
type Message struct {
	ID         string    `json:"id"`
	Sender     string    `json:"sender"`
	SenderName string    `json:"senderName"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"` // UTC
}

// Ticket is a support request and its message thread. The chat view is a
// projection of this single entity (see Conversation), so ticket and
// conversation status cannot drift apart.
type Ticket struct {
	ID              string    `json:"id"`
	TicketID        string    `json:"ticketId"` // human-facing reference, eg. TKT-2045
	Subject         string    `json:"subject"`
	Status          string    `json:"status"`
	SchoolID        string    `json:"schoolId"`
	School          string    `json:"school"`
	Unread          int       `json:"unread"`
	LastMessage     string    `json:"lastMessage"`
	LastMessageTime time.Time `json:"lastMessageTime"`
	Messages        []Message `json:"messages"`
	CreatedAt       time.Time `json:"createdAt"` // UTC
	UpdatedAt       time.Time `json:"updatedAt"` // UTC
}

// Closed reports whether the ticket no longer accepts messages.
func (t *Ticket) Closed() bool {
	return t.Status == StatusClosed
}

// ConversationStatus maps the ticket status to the chat vocabulary:
// open/in-progress read as active, closed reads as resolved.
func (t *Ticket) ConversationStatus() string {
	if t.Closed() {
		return ConversationResolved
	}
	return ConversationActive
}

// Conversation is the chat widget's read-only view of a ticket.
type Conversation struct {
	ID              string    `json:"id"`
	TicketID        string    `json:"ticketId"`
	Subject         string    `json:"subject"`
	Status          string    `json:"status"`
	SchoolID        string    `json:"schoolId"`
	School          string    `json:"school"`
	Unread          int       `json:"unread"`
	LastMessage     string    `json:"lastMessage"`
	LastMessageTime time.Time `json:"lastMessageTime"`
	Messages        []Message `json:"messages"`
}

func (t *Ticket) conversation() Conversation {
	return Conversation{
		ID:              t.ID,
		TicketID:        t.TicketID,
		Subject:         t.Subject,
		Status:          t.ConversationStatus(),
		SchoolID:        t.SchoolID,
		School:          t.School,
		Unread:          t.Unread,
		LastMessage:     t.LastMessage,
		LastMessageTime: t.LastMessageTime,
		Messages:        t.Messages,
	}
}

// NewTicket contains information needed to open a new support ticket.
type NewTicket struct {
	Subject  string `json:"subject" validate:"required"`
	SchoolID string `json:"schoolId" validate:"required"`
	School   string `json:"school" validate:"required"`
	Text     string `json:"text"`
}
