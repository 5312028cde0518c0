package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"blogicum/app/config"
	"blogicum/app/models"
	"blogicum/app/repositories"
	"blogicum/app/routes"

	"github.com/dgraph-io/badger/v4"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cfg := config.Load()

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("blogicum version %s\n", cliVersion)
	case "serve":
		serve(cfg)
	case "init":
		initDB(cfg)
	case "clean":
		clean(cfg)
	case "backup":
		backup(cfg)
	case "restore":
		if len(os.Args) < 3 {
			fmt.Println("Error: backup file path required for restore")
			os.Exit(1)
		}
		restore(cfg, os.Args[2])
	case "category":
		if len(os.Args) < 5 || os.Args[2] != "add" {
			fmt.Println("Usage: blogicum category add <title> <slug> [description]")
			os.Exit(1)
		}
		addCategory(cfg, os.Args[3], os.Args[4], strings.Join(os.Args[5:], " "))
	case "location":
		if len(os.Args) < 4 || os.Args[2] != "add" {
			fmt.Println("Usage: blogicum location add <name>")
			os.Exit(1)
		}
		addLocation(cfg, strings.Join(os.Args[3:], " "))
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: blogicum <command> [options]

Commands:
  serve                          Run the blog web application.
  init                           Initialize a new empty database.
  clean                          Remove the database.
  backup                         Create a backup of the database.
  restore <file>                 Restore the database from a backup.
  category add <title> <slug> [description]
                                 Add a published category.
  location add <name>            Add a published location.
  version                        Show version information.
  help                           Display this help message.
`
	fmt.Println(helpText)
}

func openDB(cfg *config.Config) *badger.DB {
	db, err := badger.Open(badger.DefaultOptions(cfg.DBPath).WithLogger(nil))
	if err != nil {
		log.Fatalf("Failed to open Badger DB: %v", err)
	}
	return db
}

// serve starts the blog web application
func serve(cfg *config.Config) {
	db := openDB(cfg)
	defer db.Close()

	router := routes.Setup(db, cfg)

	log.Printf("Starting blogicum on %s", cfg.Addr)
	if err := routes.StartServer(cfg.Addr, router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initDB initializes a new empty database
func initDB(cfg *config.Config) {
	if _, err := os.Stat(cfg.DBPath); err == nil {
		fmt.Println("Database already exists. Use 'clean' first if you want to reinitialize.")
		return
	}

	if err := os.MkdirAll(cfg.DBPath, 0o755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	db := openDB(cfg)
	defer db.Close()

	fmt.Println("Database initialized successfully")
}

// clean removes the database
func clean(cfg *config.Config) {
	if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
		fmt.Println("Database is already clean (does not exist)")
		return
	}

	fmt.Print("Are you sure you want to clean the database? This cannot be undone. [y/N] ")
	var response string
	fmt.Scanln(&response)
	if response != "y" && response != "Y" {
		fmt.Println("Operation cancelled")
		return
	}

	if err := os.RemoveAll(cfg.DBPath); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("Database cleaned successfully")
}

// backup creates a backup of the database
func backup(cfg *config.Config) {
	if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
		fmt.Println("No database exists to backup")
		return
	}

	backupDir := filepath.Join(filepath.Dir(cfg.DBPath), "backups")
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		log.Fatalf("Failed to create backup directory: %v", err)
	}

	db := openDB(cfg)
	defer db.Close()

	backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
	f, err := os.Create(backupFile)
	if err != nil {
		log.Fatalf("Failed to create backup file: %v", err)
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		log.Fatalf("Failed to backup database: %v", err)
	}

	fmt.Printf("Database backed up successfully to %s\n", backupFile)
}

// restore restores the database from a backup
func restore(cfg *config.Config, backupFile string) {
	if _, err := os.Stat(backupFile); os.IsNotExist(err) {
		fmt.Printf("Backup file does not exist: %s\n", backupFile)
		return
	}

	if _, err := os.Stat(cfg.DBPath); err == nil {
		fmt.Print("Existing database found. Do you want to replace it? [y/N] ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Operation cancelled")
			return
		}
		if err := os.RemoveAll(cfg.DBPath); err != nil {
			log.Fatalf("Failed to remove existing database: %v", err)
		}
	}

	if err := os.MkdirAll(cfg.DBPath, 0o755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	db := openDB(cfg)
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		log.Fatalf("Failed to open backup file: %v", err)
	}
	defer f.Close()

	if err := db.Load(f, 4); err != nil {
		log.Fatalf("Failed to restore database: %v", err)
	}

	fmt.Println("Database restored successfully")
}

// addCategory creates a published category. Categories are only ever
// created here, never through the web application.
func addCategory(cfg *config.Config, title, slug, description string) {
	db := openDB(cfg)
	defer db.Close()

	category := &models.Category{
		Title:       title,
		Slug:        slug,
		Description: description,
		IsPublished: true,
	}
	category.BeforeCreate()
	if err := category.Validate(); err != nil {
		log.Fatalf("Invalid category: %v", err)
	}

	repo := repositories.NewBadgerCategoryRepository(db)
	if err := repo.Create(category); err != nil {
		log.Fatalf("Failed to create category: %v", err)
	}
	fmt.Printf("Category %q created with slug %q\n", category.Title, category.Slug)
}

// addLocation creates a published location.
func addLocation(cfg *config.Config, name string) {
	db := openDB(cfg)
	defer db.Close()

	location := &models.Location{
		Name:        name,
		IsPublished: true,
	}
	location.BeforeCreate()
	if err := location.Validate(); err != nil {
		log.Fatalf("Invalid location: %v", err)
	}

	repo := repositories.NewBadgerLocationRepository(db)
	if err := repo.Create(location); err != nil {
		log.Fatalf("Failed to create location: %v", err)
	}
	fmt.Printf("Location %q created\n", location.Name)
}
