package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var NowFunc = time.Now // mockable

type (
	// Repository persists the ticket collection wholesale: the backing
	// storage key is rewritten on every change.
	Repository interface {
		GetTickets() ([]Ticket, error)
		PutTickets([]Ticket) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListTickets returns the persisted collection. No ordering is enforced;
// sorting by last activity is the display layer's job.
func (svc *Service) ListTickets() ([]Ticket, error) {
	return svc.repo.GetTickets()
}

// ListConversations projects the collection into the chat view.
func (svc *Service) ListConversations() ([]Conversation, error) {
	tickets, err := svc.repo.GetTickets()
	if err != nil {
		return nil, err
	}
	convs := make([]Conversation, 0, len(tickets))
	for i := range tickets {
		convs = append(convs, tickets[i].conversation())
	}
	return convs, nil
}

// Get returns one ticket by its ID.
func (svc *Service) Get(id string) (Ticket, error) {
	tickets, err := svc.repo.GetTickets()
	if err != nil {
		return Ticket{}, err
	}
	for i := range tickets {
		if tickets[i].ID == id {
			return tickets[i], nil
		}
	}
	return Ticket{}, ErrNotFound
}

// Create opens a new ticket, optionally seeded with a first admin message.
func (svc *Service) Create(nt NewTicket, senderName string) (Ticket, error) {
	now := NowFunc().UTC()
	t := Ticket{
		ID:        uuid.New().String(),
		TicketID:  fmt.Sprintf("TKT-%d", now.UnixNano()%100000),
		Subject:   nt.Subject,
		Status:    StatusOpen,
		SchoolID:  nt.SchoolID,
		School:    nt.School,
		Messages:  []Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if text := strings.TrimSpace(nt.Text); text != "" {
		msg := Message{
			ID:         uuid.New().String(),
			Sender:     SenderAdmin,
			SenderName: senderName,
			Text:       text,
			Timestamp:  now,
		}
		t.Messages = append(t.Messages, msg)
		t.LastMessage = msg.Text
		t.LastMessageTime = msg.Timestamp
		t.Unread = 1
	}

	tickets, err := svc.repo.GetTickets()
	if err != nil {
		return Ticket{}, err
	}
	tickets = append(tickets, t)
	if err = svc.repo.PutTickets(tickets); err != nil {
		return Ticket{}, errors.Wrap(err, "persisting ticket")
	}
	return t, nil
}

// OpenConversation marks the conversation read and returns its view.
// Opening an already-open conversation is a no-op beyond the counter reset;
// the write is skipped entirely when the counter is already zero.
func (svc *Service) OpenConversation(id string) (Conversation, error) {
	tickets, err := svc.repo.GetTickets()
	if err != nil {
		return Conversation{}, err
	}
	for i := range tickets {
		if tickets[i].ID != id {
			continue
		}
		if tickets[i].Unread != 0 {
			tickets[i].Unread = 0
			if err = svc.repo.PutTickets(tickets); err != nil {
				return Conversation{}, errors.Wrap(err, "persisting read marker")
			}
		}
		return tickets[i].conversation(), nil
	}
	return Conversation{}, ErrNotFound
}

// SendMessage appends a message to the ticket's thread, stamped with the
// sender identity and current time, and refreshes the denormalized tail.
// Empty or whitespace-only text and closed tickets are rejected without a
// persisted write. A support reply moves an open ticket to in-progress.
func (svc *Service) SendMessage(id, sender, senderName, text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyMessage
	}

	tickets, err := svc.repo.GetTickets()
	if err != nil {
		return Message{}, err
	}
	for i := range tickets {
		if tickets[i].ID != id {
			continue
		}
		if tickets[i].Closed() {
			return Message{}, ErrTicketClosed
		}

		msg := Message{
			ID:         uuid.New().String(),
			Sender:     sender,
			SenderName: senderName,
			Text:       text,
			Timestamp:  NowFunc().UTC(),
		}
		tickets[i].Messages = append(tickets[i].Messages, msg)
		tickets[i].LastMessage = msg.Text
		tickets[i].LastMessageTime = msg.Timestamp
		tickets[i].UpdatedAt = msg.Timestamp
		switch sender {
		case SenderSupport:
			if tickets[i].Status == StatusOpen {
				tickets[i].Status = StatusInProgress
			}
		case SenderAdmin:
			tickets[i].Unread++
		}

		if err = svc.repo.PutTickets(tickets); err != nil {
			return Message{}, errors.Wrap(err, "persisting message")
		}
		return msg, nil
	}
	return Message{}, ErrNotFound
}

// Resolve closes the ticket; its conversation reads as resolved. The status
// change and the projection move together in one persisted write.
func (svc *Service) Resolve(id string) (Ticket, error) {
	return svc.setStatus(id, StatusClosed)
}

// Reopen restores a closed ticket to open; sending is enabled again.
func (svc *Service) Reopen(id string) (Ticket, error) {
	return svc.setStatus(id, StatusOpen)
}

func (svc *Service) setStatus(id, status string) (Ticket, error) {
	tickets, err := svc.repo.GetTickets()
	if err != nil {
		return Ticket{}, err
	}
	for i := range tickets {
		if tickets[i].ID != id {
			continue
		}
		if tickets[i].Status != status {
			tickets[i].Status = status
			tickets[i].UpdatedAt = NowFunc().UTC()
			if err = svc.repo.PutTickets(tickets); err != nil {
				return Ticket{}, errors.Wrap(err, "persisting status")
			}
		}
		return tickets[i], nil
	}
	return Ticket{}, ErrNotFound
}

// ActiveCount counts tickets still awaiting attention, for dashboard stats.
func (svc *Service) ActiveCount() (int, error) {
	tickets, err := svc.repo.GetTickets()
	if err != nil {
		return 0, err
	}
	var n int
	for i := range tickets {
		if !tickets[i].Closed() {
			n++
		}
	}
	return n, nil
}
