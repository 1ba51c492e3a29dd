// Seed applies schema.sql and loads the starting drink catalog. Safe to
// re-run: existing tables and products are left alone.
package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/chadee/pos-backend/internal/config"
	"github.com/chadee/pos-backend/internal/postgres"
	"github.com/joho/godotenv"
)

type seedProduct struct {
	id, name, category string
	price              string
}

var drinks = []seedProduct{
	{"prod_1", "ชาเขียว", "ชา", "50"},
	{"prod_2", "อเมริกาโน่", "กาแฟ", "50"},
	{"prod_3", "น้ำส้ม", "น้ำผลไม้", "55"},
	{"prod_4", "ชานมปั่น", "ชา", "30"},
	{"prod_5", "ชานมเย็น", "ชา", "25"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	schema, err := os.ReadFile("schema.sql")
	if err != nil {
		log.Fatalf("read schema.sql: %v", err)
	}
	for _, stmt := range splitStatements(string(schema)) {
		if _, err := db.Exec(ctx, stmt); err != nil {
			log.Fatalf("apply schema: %v\nstatement: %s", err, stmt)
		}
	}

	seeded := 0
	for _, d := range drinks {
		ct, err := db.Exec(ctx, `
			INSERT INTO products(id, name, price, category, is_active)
			VALUES ($1, $2, $3, $4, TRUE)
			ON CONFLICT (id) DO NOTHING`,
			d.id, d.name, d.price, d.category)
		if err != nil {
			log.Fatalf("seed product %s: %v", d.id, err)
		}
		seeded += int(ct.RowsAffected())
	}
	log.Printf("schema applied, %d products seeded", seeded)
}

// splitStatements breaks the schema file into single statements; pgx's
// extended protocol rejects multi-statement Exec calls.
func splitStatements(sql string) []string {
	var out []string
	for _, stmt := range strings.Split(sql, ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out
}
