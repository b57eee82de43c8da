package main

import (
	"log"

	"github.com/chazu/boardsolid/cmd/boardsolid/cmd"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	cmd.Execute()
}
