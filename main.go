package main

import (
	_ "github.com/joho/godotenv/autoload"
	"github.com/sweeper-bot/sweeper/cmd"
	"github.com/sweeper-bot/sweeper/common/log"
)

func main() {
	if err := cmd.Run(); err != nil {
		log.Fatal(err)
	}
}
