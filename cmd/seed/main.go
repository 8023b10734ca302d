package main

import (
	"context"
	"fmt"
	"log"

	"github.com/01moynul/plantsy-golang/internal/config"
	"github.com/01moynul/plantsy-golang/internal/database"
	"github.com/01moynul/plantsy-golang/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, dialect, err := database.OpenDB(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("OpenDB failed: %v", err)
	}
	defer db.Close()

	n, err := store.Seed(ctx, store.NewSQLPlantStore(db, dialect), store.SamplePlants)
	if err != nil {
		log.Fatalf("seed failed after %d plants: %v", n, err)
	}

	if n == 0 {
		fmt.Println("Catalog already has plants, nothing seeded.")
		return
	}
	fmt.Printf("Seeded %d plants (%s)\n", n, dialect.Name)
}
