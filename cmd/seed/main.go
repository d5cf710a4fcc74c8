package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ecommerce-backend/config"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	"github.com/oksasatya/go-ecommerce-backend/internal/infrastructure/mongodb"
	"github.com/oksasatya/go-ecommerce-backend/pkg/helpers"
)

var demoProducts = []entity.Product{
	{Name: "Classic Tee", Category: "tshirt", Image: "https://picsum.photos/seed/tee/600/600", Price: 19.99, Description: "Soft cotton crew neck."},
	{Name: "Denim Jacket", Category: "jacket", Image: "https://picsum.photos/seed/jacket/600/600", Price: 79.5, Description: "Washed denim, regular fit."},
	{Name: "Running Shoes", Category: "shoes", Image: "https://picsum.photos/seed/shoes/600/600", Price: 120, Description: "Lightweight trainers for daily runs."},
	{Name: "Wool Beanie", Category: "accessories", Image: "https://picsum.photos/seed/beanie/600/600", Price: 14.25, Description: "Warm ribbed knit."},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongodb.NewClient(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(cfg.MongoDatabase)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}
	helpers.LogInfo(logger, "indexes ensured", logrus.Fields{"database": cfg.MongoDatabase})

	products := mongodb.NewProductRepository(db)
	for i := range demoProducts {
		p := demoProducts[i]
		if err := products.Create(ctx, &p); err != nil {
			log.Fatalf("failed to seed product %q: %v", p.Name, err)
		}
		helpers.LogInfo(logger, "seeded product", logrus.Fields{"id": p.ID.Hex(), "name": p.Name, "price": p.Price})
	}
}
