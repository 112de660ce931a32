package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/polkiloo/designstudio/internal/logger"
	pkgAuth "github.com/polkiloo/designstudio/internal/pkg/auth"
	"github.com/polkiloo/designstudio/internal/seed"
	"github.com/polkiloo/designstudio/internal/storage/postgres"
)

func main() {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	dsn := fs.String("d", os.Getenv("DATABASE_URI"), "database connection string")
	clearData := fs.Bool("clear", false, "remove orders, tariffs and non-staff users before seeding")
	adminUsername := fs.String("admin-username", "", "create a staff account with this username")
	adminPassword := fs.String("admin-password", "", "password for the staff account")
	logLevel := fs.String("log-level", "info", "log level")
	_ = fs.Parse(os.Args[1:])

	if *dsn == "" {
		fmt.Fprintln(os.Stderr, "database connection string is required (-d or DATABASE_URI)")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.New(*logLevel)
	storage, err := postgres.New(ctx, *dsn, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open storage: %v\n", err)
		os.Exit(1)
	}

	seeder := seed.New(storage, storage, pkgAuth.NewBcryptHasher(0), log)
	_, err = seeder.Run(ctx, seed.Options{
		Clear:         *clearData,
		AdminUsername: *adminUsername,
		AdminPassword: *adminPassword,
	})
	storage.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed demo data: %v\n", err)
		os.Exit(1)
	}
}
