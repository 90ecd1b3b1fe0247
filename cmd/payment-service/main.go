package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}

	app := &cli.App{
		Name:  "payment-service",
		Usage: "payment intents and gateway callback reconciliation for the prasad storefront",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API and the gRPC health service",
				Action: serve,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "migrate",
						Usage: "apply pending SQL migrations before serving",
					},
				},
			},
			{
				Name:   "migrate",
				Usage:  "apply SQL migrations to the order ledger",
				Action: runMigrations,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "down",
						Usage: "roll back the most recent migration",
					},
				},
			},
			{
				Name:   "sign",
				Usage:  "print the callback signature for an intent and payment id",
				Action: signCallback,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "secret",
						Usage:    "gateway key secret",
						EnvVars:  []string{"RAZORPAY_SECRET_KEY"},
						Required: true,
					},
					&cli.StringFlag{Name: "intent", Usage: "gateway intent id", Required: true},
					&cli.StringFlag{Name: "payment", Usage: "gateway payment id", Required: true},
				},
			},
			{
				Name:   "dangling",
				Usage:  "list gateway intents that have no local order",
				Action: listDangling,
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "since", Usage: "look back this far", Value: 24 * time.Hour},
					&cli.IntFlag{Name: "limit", Usage: "maximum rows", Value: 50},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("payment-service: %v", err)
	}
}
