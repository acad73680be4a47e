package main

import (
	"path/filepath"
	"testing"

	"github.com/megatechsolutions/superadmin/core"
	"github.com/megatechsolutions/superadmin/core/school"
	"github.com/megatechsolutions/superadmin/core/ticket"
	"github.com/megatechsolutions/superadmin/storage/localstore"
)

func setup(t *testing.T) *commandLine {
	store, err := localstore.Open(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("localstore.Open() failed, %v", err)
	}
	return &commandLine{
		conf:      core.NewConfig(),
		schoolSvc: school.NewService(localstore.NewSchoolRepository(store)),
		ticketSvc: ticket.NewService(localstore.NewTicketRepository(store)),
	}
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
	extra   interface{}
}

func Test_commandLine_hashsecret(t *testing.T) {
	cli := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "empty password", args: []string{"hashsecret"}, wantErr: errHelp},
		{name: "hashes password", args: []string{"hashsecret"}, extra: extra{pwd: "123456"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_seed(t *testing.T) {
	cli := setup(t)

	if err := cli.run([]string{"admin", "seed"}); err != nil {
		t.Fatalf("cli.run() unexpected error = %v", err)
	}

	schools, err := cli.schoolSvc.Schools()
	if err != nil {
		t.Fatalf("Schools() failed, %v", err)
	}
	if len(schools) != 2 {
		t.Errorf("Schools() len = %d, want 2", len(schools))
	}
	admins, err := cli.schoolSvc.Admins()
	if err != nil {
		t.Fatalf("Admins() failed, %v", err)
	}
	if len(admins) != 2 {
		t.Errorf("Admins() len = %d, want 2", len(admins))
	}
	tickets, err := cli.ticketSvc.ListTickets()
	if err != nil {
		t.Fatalf("ListTickets() failed, %v", err)
	}
	if len(tickets) != 2 {
		t.Errorf("ListTickets() len = %d, want 2", len(tickets))
	}
	for i := range tickets {
		if tickets[i].Subject == "Exam results not syncing" && tickets[i].Status != ticket.StatusInProgress {
			t.Errorf("replied ticket status = %s, want %s", tickets[i].Status, ticket.StatusInProgress)
		}
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)
	cli.conf.Storage.DatabaseURL = ""

	if err := cli.run([]string{"admin", "migrate"}); err == nil {
		t.Error("cli.run() expected error for missing database URL")
	}
}
