package main

import "schoolhub/internal/app"

// @title           schoolhub auth API
// @version         1.0
// @description     Role-based login with emailed one-time codes.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	app.Run()
}
