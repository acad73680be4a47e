package main

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/megatechsolutions/superadmin/core/school"
	"github.com/megatechsolutions/superadmin/core/ticket"
)

// seed loads a demo data set through the services so every record carries
// proper IDs, timestamps and denormalized fields.
func (cli *commandLine) seed() error {
	greenfield, err := cli.schoolSvc.CreateSchool(school.NewSchool{
		Name:    "Greenfield Academy",
		Email:   "info@greenfieldacademy.ng",
		Phone:   "+234 802 555 0134",
		Address: "12 Adeola Odeku St, Victoria Island, Lagos",
		Plan:    "premium",
	})
	if err != nil {
		return errors.Wrap(err, "seeding schools")
	}
	sunrise, err := cli.schoolSvc.CreateSchool(school.NewSchool{
		Name:    "Sunrise International College",
		Email:   "admin@sunrisecollege.ng",
		Phone:   "+234 809 555 0188",
		Address: "Plot 45 Gwarinpa Estate, Abuja",
		Plan:    "standard",
	})
	if err != nil {
		return errors.Wrap(err, "seeding schools")
	}

	if _, err = cli.schoolSvc.CreateAdmin(school.NewAdmin{
		Name:     "Chiamaka Okafor",
		Email:    "c.okafor@greenfieldacademy.ng",
		SchoolID: greenfield.ID,
	}); err != nil {
		return errors.Wrap(err, "seeding admins")
	}
	if _, err = cli.schoolSvc.CreateAdmin(school.NewAdmin{
		Name:     "Ibrahim Musa",
		Email:    "i.musa@sunrisecollege.ng",
		SchoolID: sunrise.ID,
	}); err != nil {
		return errors.Wrap(err, "seeding admins")
	}

	t, err := cli.ticketSvc.Create(ticket.NewTicket{
		Subject:  "Exam results not syncing",
		SchoolID: greenfield.ID,
		School:   greenfield.Name,
		Text:     "Our term 2 results uploaded yesterday are not showing on the parent portal.",
	}, "Chiamaka Okafor")
	if err != nil {
		return errors.Wrap(err, "seeding tickets")
	}
	if _, err = cli.ticketSvc.SendMessage(
		t.ID, ticket.SenderSupport, "Support Team",
		"Thanks for reporting this, we are looking into the sync job now.",
	); err != nil {
		return errors.Wrap(err, "seeding tickets")
	}
	if _, err = cli.ticketSvc.Create(ticket.NewTicket{
		Subject:  "Billing question for next term",
		SchoolID: sunrise.ID,
		School:   sunrise.Name,
		Text:     "Can we switch to the premium plan before the new session starts?",
	}, "Ibrahim Musa"); err != nil {
		return errors.Wrap(err, "seeding tickets")
	}

	fmt.Println("demo data loaded")
	return nil
}
