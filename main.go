package main

import (
	"log"

	"github.com/joho/godotenv"

	"huddle/config"
	"huddle/server"
)

func main() {
	// optional .env for local runs; real deployments set the environment
	_ = godotenv.Load()

	cfg := config.MustLoad()
	app := &server.App{}
	app.Initialize(cfg)
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
