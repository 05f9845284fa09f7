package main

import "bankportal/internal/app"

// @title           Banking Portal API
// @version         1.0
// @description     Verification codes and card request management for the customer portal.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
