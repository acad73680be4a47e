package main

import (
	"errors"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/megatechsolutions/superadmin/core"
	"github.com/megatechsolutions/superadmin/core/school"
	"github.com/megatechsolutions/superadmin/core/session"
	"github.com/megatechsolutions/superadmin/core/ticket"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf      *core.Config
	schoolSvc *school.Service
	ticketSvc *ticket.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  seed       - load demo schools, admins, students and tickets into the datastore")
	fmt.Println("  hashsecret - prompt for a password and print its hash for directory configuration")
	fmt.Println("  migrate    - apply pending SQL migrations (requires a configured database URL)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "seed":
		return cli.seed()
	case "hashsecret":
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			cli.printUsage()
			return errHelp
		}
		hash, err := session.HashPassword(string(pwd))
		if err != nil {
			return err
		}
		fmt.Println(string(hash))
		return nil
	case "migrate":
		return cli.migrate()
	default:
		cli.printUsage()
		return errHelp
	}
}
