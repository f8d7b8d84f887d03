package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/lakotacamp/Battle-Brush-Studio/internal/config"
	"github.com/lakotacamp/Battle-Brush-Studio/internal/models"
	"github.com/lakotacamp/Battle-Brush-Studio/internal/repository"
	"github.com/lakotacamp/Battle-Brush-Studio/pkg/utils"
)

var sampleModels = []models.Model{
	{Name: "Dragon", Filepath: "/models/dragon.gltf", Mesh: "head,body,wings,tail"},
	{Name: "Knight", Filepath: "/models/knight.gltf", Mesh: "helmet,armor,shield"},
	{Name: "Wyvern", Filepath: "/models/wyvern.gltf", Mesh: "head,body,wings"},
	{Name: "Golem", Filepath: "/models/golem.gltf", Mesh: "torso,arms,legs"},
	{Name: "Treant", Filepath: "/models/treant.gltf", Mesh: "trunk,branches,leaves"},
}

var sampleColors = []models.Color{
	{Name: "Crimson", Hexcode: "#dc143c", Material: "scale"},
	{Name: "Steel", Hexcode: "#c0c0c0", Material: "armor"},
	{Name: "Ivory", Hexcode: "#fffff0", Material: "horn"},
	{Name: "Moss", Hexcode: "#8a9a5b", Material: "leaves"},
	{Name: "Obsidian", Hexcode: "#0b1215", Material: "claw"},
	{Name: "Gold", Hexcode: "#ffd700", Material: "trim"},
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := run(logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := repository.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Model{}, &models.Color{}, &models.PaintedModel{}, &models.AuditLog{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	hash, err := utils.HashPassword("password123")
	if err != nil {
		return err
	}
	users := make([]models.User, 0, 5)
	for i := 1; i <= 5; i++ {
		users = append(users, models.User{
			Username:     fmt.Sprintf("painter%d", i),
			PasswordHash: hash,
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	seededModels := make([]models.Model, len(sampleModels))
	copy(seededModels, sampleModels)
	for i := range seededModels {
		owner := users[rand.Intn(len(users))].ID
		seededModels[i].UserID = &owner
	}
	if err := db.Create(&seededModels).Error; err != nil {
		return fmt.Errorf("failed to seed models: %w", err)
	}

	seededColors := make([]models.Color, len(sampleColors))
	copy(seededColors, sampleColors)
	if err := db.Create(&seededColors).Error; err != nil {
		return fmt.Errorf("failed to seed colors: %w", err)
	}

	painted := make([]models.PaintedModel, 0, 10)
	for i := 0; i < 10; i++ {
		painted = append(painted, models.PaintedModel{
			ModelID: seededModels[rand.Intn(len(seededModels))].ID,
			ColorID: seededColors[rand.Intn(len(seededColors))].ID,
		})
	}
	if err := db.Create(&painted).Error; err != nil {
		return fmt.Errorf("failed to seed painted models: %w", err)
	}

	logger.Info("Seed data created",
		"users", len(users),
		"models", len(seededModels),
		"colors", len(seededColors),
		"painted_models", len(painted),
	)
	return nil
}
