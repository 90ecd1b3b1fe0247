package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/config"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/infrastructure/migrate"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/infrastructure/postgres"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/infrastructure/postgres/repository"
	paymentuc "github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/usecase/payment"
	"github.com/urfave/cli/v2"
)

func runMigrations(c *cli.Context) error {
	cfg := config.MustLoad()
	db := postgres.MustInitDB(cfg.OrderDB)
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	direction := migrate.Up
	if c.Bool("down") {
		direction = migrate.Down
	}
	return migrate.Run(db, cfg.OrderDB.MigrationsPath, direction)
}

func signCallback(c *cli.Context) error {
	signer, err := paymentuc.NewSigner(c.String("secret"))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, signer.Sign(c.String("intent"), c.String("payment")))
	return nil
}

func listDangling(c *cli.Context) error {
	cfg := config.MustLoad()
	db := postgres.MustInitDB(cfg.OrderDB)
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	ctx, cancel := context.WithTimeout(c.Context, cfg.OrderDB.QueryTimeout)
	defer cancel()

	since := time.Now().Add(-c.Duration("since"))
	intents, err := repository.NewDefaultDanglingIntentRepository(db).ListDanglingIntents(ctx, since, c.Int("limit"))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tINTENT\tAMOUNT\tCURRENCY\tEMAIL\tERROR")
	for _, intent := range intents {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			intent.CreatedAt.Format(time.RFC3339),
			intent.GatewayIntentID,
			intent.Amount,
			intent.Currency,
			intent.CustomerEmail,
			intent.ErrorMessage,
		)
	}
	return w.Flush()
}
