// Command chat runs the conversational lead capture flow on a terminal,
// submitting the assembled record to a running lead API.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/adaai/leadcapture/internal/capture"
	"github.com/adaai/leadcapture/internal/config"
)

func main() {
	apiBase := flag.String("api", envOr("API_BASE_URL", "http://localhost:8080"), "Lead API base URL")
	flag.Parse()

	contact := config.ContactInfo{
		Email: envOr("CONTACT_EMAIL", "contact@adaai.in"),
		Phone: envOr("CONTACT_PHONE", "+91 93463 17790"),
	}

	submitter := capture.NewAPISubmitter(nil, *apiBase)
	machine := capture.NewMachine(submitter, contact)

	for _, msg := range machine.Open() {
		printMessage(msg)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for machine.State() != capture.StateDone {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		for _, msg := range machine.Input(ctx, scanner.Text()) {
			printMessage(msg)
		}
		cancel()
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("read input: %v", err)
	}
}

// envOr returns the value of the environment variable or the fallback.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printMessage(msg capture.Message) {
	prefix := "bot"
	if msg.Role == capture.RoleUser {
		prefix = "you"
	}
	fmt.Printf("[%s] %s\n", prefix, msg.Text)
}
