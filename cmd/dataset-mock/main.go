package main

import (
	"flag"
	"log"
	"net/http"
	"os"
)

func main() {
	var (
		port    = flag.String("port", "9099", "port to listen on")
		data    = flag.String("data", "data/movies.csv", "path to dataset CSV file")
		verbose = flag.Bool("log", false, "enable request logging")
	)
	flag.Parse()

	payload, err := os.ReadFile(*data)
	if err != nil {
		log.Fatalf("read dataset: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/dataset", func(w http.ResponseWriter, r *http.Request) {
		if *verbose {
			log.Printf("serving dataset to %s", r.RemoteAddr)
		}
		w.Header().Set("Content-Type", "text/csv")
		if _, err := w.Write(payload); err != nil {
			log.Printf("write dataset: %v", err)
		}
	})

	addr := ":" + *port
	log.Printf("mock dataset server listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
