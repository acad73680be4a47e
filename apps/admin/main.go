package main

import (
	"log"
	"os"

	"github.com/megatechsolutions/superadmin/core"
	"github.com/megatechsolutions/superadmin/core/school"
	"github.com/megatechsolutions/superadmin/core/ticket"
	"github.com/megatechsolutions/superadmin/storage/localstore"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	store, err := localstore.Open(conf.Storage.Path)
	errAndDie(err)

	cli := commandLine{
		conf:      conf,
		schoolSvc: school.NewService(localstore.NewSchoolRepository(store)),
		ticketSvc: ticket.NewService(localstore.NewTicketRepository(store)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
