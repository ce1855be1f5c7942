package main

import (
	"fmt"
	"os"

	"github.com/kartika/bujet/internal/config"
	"github.com/kartika/bujet/internal/policy"
	"github.com/kartika/bujet/internal/storage"
	"github.com/spf13/viper"
)

// outputDir resolves and creates the directory holding budget files,
// reports, and exports.
func outputDir() (string, error) {
	dir := config.ExpandPath(viper.GetString("output.dir"))
	if dir == "" {
		dir = "output"
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory %q: %w", dir, err)
	}
	return dir, nil
}

// loadThresholds builds the approval policy, letting the config file
// override individual defaults.
func loadThresholds() policy.Thresholds {
	t := policy.DefaultThresholds()

	if viper.IsSet("policy.max_total_amount") {
		t.MaxTotalAmount = viper.GetFloat64("policy.max_total_amount")
	}
	if viper.IsSet("policy.max_category_percentage") {
		t.MaxCategoryPercentage = viper.GetFloat64("policy.max_category_percentage")
	}
	if viper.IsSet("policy.max_item_percentage") {
		t.MaxItemPercentage = viper.GetFloat64("policy.max_item_percentage")
	}
	if viper.IsSet("policy.required_categories") {
		t.RequiredCategories = viper.GetStringSlice("policy.required_categories")
	}
	if viper.IsSet("policy.min_emergency_percentage") {
		t.MinEmergencyPercentage = viper.GetFloat64("policy.min_emergency_percentage")
	}

	return t
}

// openStorage opens the audit log database and runs migrations.
func openStorage() (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "~/.local/share/bujet/bujet.db"
	}

	db, err := storage.NewSQLiteStorage(config.ExpandPath(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}
	return db, nil
}
