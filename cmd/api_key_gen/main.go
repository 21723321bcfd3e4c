package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"journal-transporter/transporter/internal/config"
	"journal-transporter/transporter/internal/db"
	"journal-transporter/transporter/internal/db/repositories"
	"journal-transporter/transporter/internal/logging"
)

func main() {
	label := flag.String("label", "migration", "label stored with the key")
	revoke := flag.String("revoke", "", "revoke this key instead of creating one")
	flag.Parse()

	logging.InitNop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	_, sqlDB, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer sqlDB.Close()

	repo := repositories.NewApiKeysRepo(sqlDB)
	ctx := context.Background()

	if *revoke != "" {
		if err := repo.Revoke(ctx, *revoke); err != nil {
			log.Fatalf("revoke api key: %v", err)
		}
		fmt.Println("Revoked API Key:", *revoke)
		return
	}

	key, err := repo.Create(ctx, *label)
	if err != nil {
		log.Fatalf("insert api key: %v", err)
	}

	fmt.Println("New API Key:", key)
}
