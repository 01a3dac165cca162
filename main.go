package main

//go:generate swag init -g main.go -o docs

import (
	"github.com/DhavalSuthar-24/pitchside/cmd"
	_ "github.com/DhavalSuthar-24/pitchside/docs"
)

// @title Pitchside REST API
// @version 1.0
// @description Cricket match scheduling and roster management.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cmd.Execute()
}
