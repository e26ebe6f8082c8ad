// setup creates the content schema used by the API.
//
// Environment variables:
//   POSTGRES_URI - connection string for the target database
//
// Usage:
//   go run scripts/setup/main.go -create-schema
//   go run scripts/setup/main.go -seed-demo
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS bible_filesets (
		hash_id        CHAR(12) PRIMARY KEY,
		id             VARCHAR(16) NOT NULL,
		asset_id       VARCHAR(64) NOT NULL,
		set_type_code  VARCHAR(16) NOT NULL,
		set_size_code  VARCHAR(9) NOT NULL DEFAULT 'C',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS bible_filesets_id_idx ON bible_filesets (id)`,

	`CREATE TABLE IF NOT EXISTS bibles (
		id          VARCHAR(12) PRIMARY KEY,
		iso         VARCHAR(3),
		script      VARCHAR(4)
	)`,
	`CREATE TABLE IF NOT EXISTS bible_fileset_connections (
		hash_id  CHAR(12) NOT NULL REFERENCES bible_filesets (hash_id),
		bible_id VARCHAR(12) NOT NULL REFERENCES bibles (id),
		PRIMARY KEY (hash_id, bible_id)
	)`,

	`CREATE TABLE IF NOT EXISTS books (
		id               VARCHAR(3) PRIMARY KEY,
		id_usfx          VARCHAR(3) NOT NULL,
		name             VARCHAR(191) NOT NULL,
		protestant_order INT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bible_books (
		bible_id VARCHAR(12) NOT NULL REFERENCES bibles (id),
		book_id  VARCHAR(3) NOT NULL REFERENCES books (id),
		name     VARCHAR(191) NOT NULL,
		PRIMARY KEY (bible_id, book_id)
	)`,

	`CREATE TABLE IF NOT EXISTS bible_verses (
		hash_id     CHAR(12) NOT NULL REFERENCES bible_filesets (hash_id),
		book_id     VARCHAR(3) NOT NULL REFERENCES books (id),
		chapter     INT NOT NULL,
		verse_start INT NOT NULL,
		verse_end   INT NOT NULL,
		verse_text  TEXT NOT NULL,
		PRIMARY KEY (hash_id, book_id, chapter, verse_start),
		CHECK (verse_end >= verse_start)
	)`,
	`CREATE INDEX IF NOT EXISTS bible_verses_text_search_idx
		ON bible_verses USING GIN (to_tsvector('simple', verse_text))`,

	`CREATE TABLE IF NOT EXISTS alphabet_numerals (
		script_id          CHAR(4) NOT NULL,
		iso                VARCHAR(3) NOT NULL,
		numeral            INT NOT NULL,
		numeral_vernacular VARCHAR(12) NOT NULL,
		numeral_written    VARCHAR(24),
		PRIMARY KEY (script_id, iso, numeral)
	)`,

	`CREATE TABLE IF NOT EXISTS user_keys (
		id  SERIAL PRIMARY KEY,
		key VARCHAR(64) UNIQUE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS access_groups (
		id   SERIAL PRIMARY KEY,
		name VARCHAR(64) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS access_group_api_keys (
		access_group_id INT NOT NULL REFERENCES access_groups (id),
		key_id          INT NOT NULL REFERENCES user_keys (id),
		PRIMARY KEY (access_group_id, key_id)
	)`,
	`CREATE TABLE IF NOT EXISTS access_group_filesets (
		access_group_id INT NOT NULL REFERENCES access_groups (id),
		hash_id         CHAR(12) NOT NULL REFERENCES bible_filesets (hash_id),
		PRIMARY KEY (access_group_id, hash_id)
	)`,
}

var seedStatements = []string{
	`INSERT INTO bibles (id, iso, script) VALUES ('ENGWEB', 'eng', 'Latn')
		ON CONFLICT DO NOTHING`,
	`INSERT INTO bible_filesets (hash_id, id, asset_id, set_type_code)
		VALUES ('abc123456789', 'ENGWEB', 'dbp-prod', 'text_plain')
		ON CONFLICT DO NOTHING`,
	`INSERT INTO bible_fileset_connections (hash_id, bible_id)
		VALUES ('abc123456789', 'ENGWEB')
		ON CONFLICT DO NOTHING`,
	`INSERT INTO books (id, id_usfx, name, protestant_order)
		VALUES ('GEN', 'GN', 'Genesis', 1), ('EXO', 'EX', 'Exodus', 2)
		ON CONFLICT DO NOTHING`,
	`INSERT INTO user_keys (key) VALUES ('demo-key')
		ON CONFLICT DO NOTHING`,
	`INSERT INTO access_groups (name) VALUES ('public-domain')
		ON CONFLICT DO NOTHING`,
	`INSERT INTO access_group_api_keys (access_group_id, key_id)
		SELECT ag.id, uk.id FROM access_groups ag, user_keys uk
		WHERE ag.name = 'public-domain' AND uk.key = 'demo-key'
		ON CONFLICT DO NOTHING`,
	`INSERT INTO access_group_filesets (access_group_id, hash_id)
		SELECT ag.id, 'abc123456789' FROM access_groups ag
		WHERE ag.name = 'public-domain'
		ON CONFLICT DO NOTHING`,
}

func main() {
	createSchema := flag.Bool("create-schema", false, "Create the content schema")
	seedDemo := flag.Bool("seed-demo", false, "Insert a demo fileset, key, and access group")
	flag.Parse()

	godotenv.Load()

	uri := os.Getenv("POSTGRES_URI")
	if uri == "" {
		log.Fatal("POSTGRES_URI environment variable is required")
	}

	ctx := context.Background()
	pgDB, err := sqlx.ConnectContext(ctx, "postgres", uri)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer pgDB.Close()

	switch {
	case *createSchema:
		run(ctx, pgDB, schemaStatements)
		log.Println("Schema created")
	case *seedDemo:
		run(ctx, pgDB, seedStatements)
		log.Println("Demo data seeded")
	default:
		fmt.Println("Scripture Text API Setup")
		fmt.Println("========================")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  1. Create schema: go run scripts/setup/main.go -create-schema")
		fmt.Println("  2. Seed demo:     go run scripts/setup/main.go -seed-demo")
	}
}

func run(ctx context.Context, pgDB *sqlx.DB, statements []string) {
	for _, stmt := range statements {
		if _, err := pgDB.ExecContext(ctx, stmt); err != nil {
			log.Fatalf("Statement failed: %v\n%s", err, stmt)
		}
	}
}
