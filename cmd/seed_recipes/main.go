// Command seed_recipes loads a directory of exported recipe JSON files into
// the database. Files that fail validation or whose uuid is already present
// are reported and skipped.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dboiago/Memoix-sub000/config"
	"github.com/dboiago/Memoix-sub000/internal/database"
	"github.com/dboiago/Memoix-sub000/internal/service"
)

func main() {
	dir := flag.String("dir", "seed", "directory of exported recipe .json files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	recipes := service.NewRecipeService(db, nil)

	entries, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatalf("Failed to read seed directory: %v", err)
	}

	ctx := context.Background()
	imported, skipped := 0, 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(*dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("skipping %s: %v", entry.Name(), err)
			skipped++
			continue
		}

		recipe, err := recipes.ImportRecipe(ctx, data)
		if err != nil {
			log.Printf("skipping %s: %v", entry.Name(), err)
			skipped++
			continue
		}

		log.Printf("imported %s (%s)", recipe.Name, recipe.UUID)
		imported++
	}

	log.Printf("done: %d imported, %d skipped", imported, skipped)
}
