package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/odeonlabs/theater-reservation-system/internal/app"
)

func main() {
	// Optional .env file; flags still win over the environment.
	godotenv.Load()

	err := app.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
