// Notification Lambda entry point
package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"subsidy-advisor-engine/internal/handlers"
	"subsidy-advisor-engine/internal/utils"
)

func main() {
	// Initialize logger
	_ = utils.InitLogger("info")
	defer utils.Sync()

	// Create handler
	handler, err := handlers.NewNotificationHandler()
	if err != nil {
		panic("Failed to create handler: " + err.Error())
	}
	defer handler.Close()

	// Start Lambda
	lambda.Start(handler.Handle)
}
