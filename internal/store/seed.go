package store

import (
	"context"
	"fmt"

	"github.com/01moynul/plantsy-golang/internal/models"
)

// SamplePlants is the catalog loaded by cmd/seed.
var SamplePlants = []models.Plant{
	{Name: "Aloe", Image: "./images/aloe.jpg", Price: 11.50, IsInStock: true},
	{Name: "ZZ Plant", Image: "./images/zz-plant.jpg", Price: 25.98, IsInStock: true},
	{Name: "Pilea peperomioides", Image: "./images/pilea.jpg", Price: 5.99, IsInStock: true},
	{Name: "Pothos", Image: "./images/pothos.jpg", Price: 12.11, IsInStock: false},
	{Name: "Live Oak", Image: "./images/live-oak.jpg", Price: 250.00, IsInStock: false},
}

// Seed inserts plants into an empty store. It does nothing and reports 0 when
// the store already holds plants, so running it twice is harmless.
func Seed(ctx context.Context, s PlantStore, plants []models.Plant) (int, error) {
	existing, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i := range plants {
		p := plants[i]
		if err := s.Create(ctx, &p); err != nil {
			return i, fmt.Errorf("seed %q: %w", p.Name, err)
		}
	}
	return len(plants), nil
}
