// Command api serves the earnings fact extraction HTTP API.
package main

import (
	"fmt"
	"net/http"
	"os"

	"earnings_facts/pkg/api/extract"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	extract.InitHandler(os.Getenv("PAGE_CACHE_DIR"))

	http.HandleFunc("/api/extract", extract.HandleExtract)
	http.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("API server starting on :%s...\n", port)
	fmt.Println("  - POST /api/extract  (JSON result; ?format=html for report preview)")
	fmt.Println("  - GET  /api/health")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
