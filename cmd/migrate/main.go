package main

import (
	"log"

	"github.com/drager40/product-manager/app/config"
	"github.com/drager40/product-manager/app/database"
)

// Applies the schema and seed users without starting the web server.
func main() {
	log.Println("Running migrations...")

	config.Load()
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed:", err)
	}
	if err := database.SeedDefaultUsers(db); err != nil {
		log.Fatal("Seeding default users failed:", err)
	}

	log.Println("Migration completed successfully")
}
