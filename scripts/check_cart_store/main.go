package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"mini-storefront/internal/config"

	"github.com/jackc/pgx/v5"
)

// Connects to the configured postgres database and reports the stored cart slots.
func main() {
	connString := config.FromEnv().Database.ConnectionString()

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	var dbName string
	err = conn.QueryRow(ctx, "SELECT current_database()").Scan(&dbName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully connected to database: %s\n", dbName)

	rows, err := conn.Query(ctx, "SELECT key, jsonb_array_length(value), updated_at FROM cart_slots ORDER BY updated_at DESC")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Query failed (run `storefront migrate` first?): %v\n", err)
		os.Exit(1)
	}
	defer rows.Close()

	fmt.Println("\nCart slots:")
	count := 0
	for rows.Next() {
		var (
			key     string
			lines   int
			updated time.Time
		)
		if err := rows.Scan(&key, &lines, &updated); err != nil {
			fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("  - %s: %d line(s), updated %s\n", key, lines, updated.Format("2006-01-02 15:04:05"))
		count++
	}
	if err := rows.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Rows failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n%d cart slot(s)\n", count)
}
