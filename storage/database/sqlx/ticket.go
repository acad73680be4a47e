package sqlxrepos

import (
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/megatechsolutions/superadmin/core/ticket"
)

type ticketRepository struct {
	db *sqlx.DB
}

func NewTicketRepository(db *sqlx.DB) ticket.Repository {
	return &ticketRepository{db: db}
}

// ticketRow maps the ticket table; the message thread is stored as one JSONB
// document, matching the wholesale collection semantics of the portal store.
type ticketRow struct {
	ID              string          `db:"id"`
	TicketID        string          `db:"ticket_id"`
	Subject         string          `db:"subject"`
	Status          string          `db:"status"`
	SchoolID        string          `db:"school_id"`
	School          string          `db:"school"`
	Unread          int             `db:"unread"`
	LastMessage     string          `db:"last_message"`
	LastMessageTime null.Time       `db:"last_message_time"`
	Messages        json.RawMessage `db:"messages"`
	CreatedAt       null.Time       `db:"created_at"`
	UpdatedAt       null.Time       `db:"updated_at"`
}

func (r ticketRow) ticket() (ticket.Ticket, error) {
	t := ticket.Ticket{
		ID:          r.ID,
		TicketID:    r.TicketID,
		Subject:     r.Subject,
		Status:      r.Status,
		SchoolID:    r.SchoolID,
		School:      r.School,
		Unread:      r.Unread,
		LastMessage: r.LastMessage,
		CreatedAt:   r.CreatedAt.Time,
		UpdatedAt:   r.UpdatedAt.Time,
	}
	if r.LastMessageTime.Valid {
		t.LastMessageTime = r.LastMessageTime.Time
	}
	if err := json.Unmarshal(r.Messages, &t.Messages); err != nil {
		return ticket.Ticket{}, errors.Wrap(err, "decoding message thread")
	}
	return t, nil
}

func (repo *ticketRepository) GetTickets() ([]ticket.Ticket, error) {
	var rows []ticketRow
	if err := repo.db.Select(&rows, `SELECT * FROM ticket ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying tickets")
	}
	tickets := make([]ticket.Ticket, 0, len(rows))
	for _, r := range rows {
		t, err := r.ticket()
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

// PutTickets rewrites the whole collection in one transaction, keeping the
// repository contract identical to the portal-storage implementation.
func (repo *ticketRepository) PutTickets(tickets []ticket.Ticket) error {
	tx, err := repo.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.Exec(`DELETE FROM ticket`); err != nil {
		return errors.Wrap(err, "clearing tickets")
	}
	for i := range tickets {
		t := &tickets[i]
		messages, err := json.Marshal(t.Messages)
		if err != nil {
			return errors.Wrap(err, "encoding message thread")
		}
		row := ticketRow{
			ID:          t.ID,
			TicketID:    t.TicketID,
			Subject:     t.Subject,
			Status:      t.Status,
			SchoolID:    t.SchoolID,
			School:      t.School,
			Unread:      t.Unread,
			LastMessage: t.LastMessage,
			Messages:    messages,
			CreatedAt:   null.TimeFrom(t.CreatedAt),
			UpdatedAt:   null.TimeFrom(t.UpdatedAt),
		}
		if !t.LastMessageTime.IsZero() {
			row.LastMessageTime = null.TimeFrom(t.LastMessageTime)
		}
		_, err = tx.NamedExec(`
			INSERT INTO ticket (id, ticket_id, subject, status, school_id, school,
			                    unread, last_message, last_message_time, messages,
			                    created_at, updated_at)
			VALUES (:id, :ticket_id, :subject, :status, :school_id, :school,
			        :unread, :last_message, :last_message_time, :messages,
			        :created_at, :updated_at)`, row)
		if err != nil {
			return errors.Wrap(err, "inserting ticket")
		}
	}
	return errors.Wrap(tx.Commit(), "committing tickets")
}
