package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/database"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/validators"
)

// Seeds the ingredient and tag reference tables from CSV files.
// ingredients.csv rows are "name,measurement_unit"; tags.csv rows are
// "name,color,slug". Existing rows are left untouched.
func main() {
	dataDir := flag.String("data", "data", "directory containing ingredients.csv and tags.csv")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seedIngredients(db, filepath.Join(*dataDir, "ingredients.csv")); err != nil {
		log.Fatalf("Failed to seed ingredients: %v", err)
	}
	if err := seedTags(db, filepath.Join(*dataDir, "tags.csv")); err != nil {
		log.Fatalf("Failed to seed tags: %v", err)
	}

	log.Println("Seed data loaded")
}

func seedIngredients(db *gorm.DB, path string) error {
	rows, err := readCSV(path, 2)
	if err != nil {
		return err
	}

	for _, row := range rows {
		ingredient := models.Ingredient{Name: row[0], MeasurementUnit: row[1]}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ingredient).Error; err != nil {
			return fmt.Errorf("ingredient %q: %w", row[0], err)
		}
	}

	log.Printf("Loaded %d ingredients from %s", len(rows), path)
	return nil
}

func seedTags(db *gorm.DB, path string) error {
	rows, err := readCSV(path, 3)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("No tags file at %s, skipping", path)
			return nil
		}
		return err
	}

	for _, row := range rows {
		if _, err := validators.HexColor(row[1]); err != nil {
			return fmt.Errorf("tag %q: %w", row[0], err)
		}
		tag := models.Tag{Name: row[0], Color: row[1], Slug: row[2]}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error; err != nil {
			return fmt.Errorf("tag %q: %w", row[0], err)
		}
	}

	log.Printf("Loaded %d tags from %s", len(rows), path)
	return nil
}

func readCSV(path string, fields int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = fields

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
