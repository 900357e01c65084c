// Package main is the attendance-service entry point (HTTP + SSE/WebSocket).
package main

import (
	"log"

	"github.com/dark0-7s/scams-20b.io/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
