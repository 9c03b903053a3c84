// Command orm-generator generates row mappers for marked Go structs.
package main

import (
	"github.com/joho/godotenv"

	"orm-generator/internal/cli"
)

func main() {
	// Load .env file if it exists (silently ignore errors)
	_ = godotenv.Load()

	cli.Execute()
}
