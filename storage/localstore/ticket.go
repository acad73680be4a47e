package localstore

import (
	"github.com/megatechsolutions/superadmin/core/ticket"
)

type ticketRepository struct {
	store *Store
}

func NewTicketRepository(store *Store) ticket.Repository {
	return &ticketRepository{store: store}
}

func (repo *ticketRepository) GetTickets() ([]ticket.Ticket, error) {
	var tickets []ticket.Ticket
	if err := repo.store.Get(KeyTickets, &tickets); err != nil {
		return []ticket.Ticket{}, nil // absent collection reads empty
	}
	return tickets, nil
}

func (repo *ticketRepository) PutTickets(tickets []ticket.Ticket) error {
	return repo.store.Put(KeyTickets, tickets)
}
