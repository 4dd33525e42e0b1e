package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-cube-raytracer/pkg/scene"
	"github.com/df07/go-cube-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", scene.FindScenesDir(), "Directory holding scene files")
	assetDir := flag.String("assets", "assets", "Directory holding textures/ and BG/ for the house scene")
	staticDir := flag.String("static", "static", "Directory holding the browser client")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port, *scenesDir, *assetDir, *staticDir)

	log.Printf("Cube Raytracer Web Server")
	log.Printf("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
