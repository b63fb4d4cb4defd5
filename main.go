package main

import (
	"log"
	"net/http"
	"os"

	"snake-sim/handlers"
	"snake-sim/sim"
)

func main() {
	manager := sim.NewManager()
	wsHandler := handlers.NewWebSocketHandler(manager)

	// WebSocket (viewer snapshots and control commands)
	http.Handle("/ws", wsHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Printf("WebSocket endpoint: /ws")
	log.Fatal(http.ListenAndServe(":"+port, nil))
}
