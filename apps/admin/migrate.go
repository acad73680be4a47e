package main

import (
	"github.com/pkg/errors"

	"github.com/megatechsolutions/superadmin/storage/database"
)

func (cli *commandLine) migrate() error {
	if cli.conf.Storage.DatabaseURL == "" {
		return errors.New("no database URL configured")
	}
	db, err := database.Open(cli.conf)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return database.Migrate(db)
}
