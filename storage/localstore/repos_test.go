package localstore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/megatechsolutions/superadmin/core/ticket"
)

func Test_ticketRepository_absentCollectionReadsEmpty(t *testing.T) {
	s, _ := openStore(t)
	repo := NewTicketRepository(s)

	tickets, err := repo.GetTickets()
	assert.NoError(t, err)
	assert.Empty(t, tickets)
}

func Test_ticketRepository_roundTrip(t *testing.T) {
	s, path := openStore(t)
	repo := NewTicketRepository(s)

	want := []ticket.Ticket{{ID: "t1", TicketID: "TKT-2045", Subject: "Grade book down", Status: ticket.StatusOpen}}
	if err := repo.PutTickets(want); err != nil {
		t.Fatalf("PutTickets() failed, %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed, %v", err)
	}
	got, err := NewTicketRepository(reopened).GetTickets()
	if err != nil {
		t.Fatalf("GetTickets() failed, %v", err)
	}
	assert.Len(t, got, 1)
	assert.Equal(t, "TKT-2045", got[0].TicketID)
}
