package main

import (
	"fmt"
	"os"
	"sort"

	"travel-portal/config"
	"travel-portal/database"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run tools/migrate.go migrate - Create or update the local tables")
		fmt.Println("  go run tools/migrate.go status  - Show which local tables exist")
		return
	}

	cfg := config.Load()

	switch os.Args[1] {
	case "migrate":
		fmt.Println("Running database migrations...")
		if _, err := database.InitDB(cfg.Database); err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Migration completed successfully!")

	case "status":
		db, err := database.Open(cfg.Database)
		if err != nil {
			fmt.Printf("Failed to connect: %v\n", err)
			os.Exit(1)
		}
		status := database.Status(db)
		tables := make([]string, 0, len(status))
		for table := range status {
			tables = append(tables, table)
		}
		sort.Strings(tables)
		for _, table := range tables {
			state := "missing"
			if status[table] {
				state = "ok"
			}
			fmt.Printf("  %-20s %s\n", table, state)
		}

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		fmt.Println("Available commands: migrate, status")
	}
}
