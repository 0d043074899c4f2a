// Command server runs the LLYLI backend HTTP API.
package main

import (
	"context"
	"log"

	"github.com/llyli-app/llyli-backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
