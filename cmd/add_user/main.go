package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/drager40/product-manager/app/config"
	"github.com/drager40/product-manager/app/database"
	"github.com/drager40/product-manager/app/models"
	"github.com/drager40/product-manager/app/routes/auth"
)

func main() {
	username := flag.String("username", "", "login name (required)")
	password := flag.String("password", "", "initial password (required)")
	role := flag.String("role", "TEAM", "ADMIN, COMPANY, DEPARTMENT or TEAM")
	company := flag.String("company", "", "company the user belongs to")
	department := flag.String("department", "", "department the user belongs to")
	team := flag.String("team", "", "team the user belongs to")
	flag.Parse()

	if *username == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	config.Load()
	db := config.GetDB()
	defer db.Close()

	exists, err := database.UsernameExists(db, *username)
	if err != nil {
		fmt.Printf("Error checking username: %v\n", err)
		os.Exit(1)
	}
	if exists {
		fmt.Printf("User %q already exists\n", *username)
		os.Exit(1)
	}

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Printf("Error hashing password: %v\n", err)
		os.Exit(1)
	}

	user := &models.AppUser{
		Username:   *username,
		Password:   hashed,
		Role:       models.ParseRole(*role),
		Enabled:    true,
		Company:    *company,
		Department: *department,
		Team:       *team,
	}

	if err := database.CreateUser(db, user); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("User created successfully: %s (%s)\n", user.Username, user.Role)
}
