package main

import (
	"context"
	"log"
	"time"

	"jewelry-backend/internal/domains/category"
	"jewelry-backend/internal/domains/product"
	"jewelry-backend/pkg/container"
	"jewelry-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type seedCategory struct {
	name        string
	description string
}

type seedProduct struct {
	name        string
	price       string
	description string
	category    string
}

var seedCategories = []seedCategory{
	{"Rings", "Beautiful rings for all occasions"},
	{"Necklaces", "Elegant necklaces and chains"},
	{"Earrings", "Stunning earrings collection"},
	{"Bracelets", "Charming bracelets and bangles"},
	{"Pendants", "Graceful pendants and lockets"},
}

var seedProducts = []seedProduct{
	{"Diamond Solitaire Ring", "25000", "Beautiful diamond solitaire ring with 18k gold band", "Rings"},
	{"Gold Chain Necklace", "15000", "Elegant 22k gold chain necklace for daily wear", "Necklaces"},
	{"Pearl Drop Earrings", "8000", "Classic pearl drop earrings with sterling silver", "Earrings"},
	{"Rose Gold Bracelet", "12000", "Delicate rose gold bracelet with heart charm", "Bracelets"},
	{"Ruby Pendant", "18000", "Exquisite ruby pendant with white gold chain", "Pendants"},
}

// Seeds the configured storage backend with default categories and
// sample products. Idempotent: a non-empty catalog is left alone.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	appContainer, err := container.NewContainer()
	if err != nil {
		log.Fatalf("failed to initialize container: %v", err)
	}
	defer appContainer.Cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := seed(ctx, appContainer); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
}

func seed(ctx context.Context, c *container.Container) error {
	existing, err := c.CategoryRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("catalog already has data, skipping seed", map[string]interface{}{
			"categories": len(existing),
		})
		return nil
	}

	byName := make(map[string]uuid.UUID, len(seedCategories))
	now := time.Now().UTC()

	for _, sc := range seedCategories {
		entity := &category.Category{
			ID:          uuid.New(),
			Name:        sc.name,
			Description: sc.description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := c.CategoryRepo.Create(ctx, entity); err != nil {
			return err
		}
		byName[sc.name] = entity.ID
		logger.Info("created category", map[string]interface{}{"name": sc.name})
	}

	for _, sp := range seedProducts {
		price, err := decimal.NewFromString(sp.price)
		if err != nil {
			return err
		}

		entity := &product.Product{
			ID:          uuid.New(),
			Name:        sp.name,
			Price:       price,
			Description: sp.description,
			CategoryID:  byName[sp.category],
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		entity.Normalize()
		if err := c.ProductRepo.Create(ctx, entity); err != nil {
			return err
		}
		logger.Info("created product", map[string]interface{}{"name": sp.name})
	}

	logger.Info("seeding complete", nil)
	return nil
}
