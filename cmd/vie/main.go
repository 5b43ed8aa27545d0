package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/xyproto/vie"
)

func main() {
	if len(os.Args) > 2 {
		fmt.Fprintf(os.Stderr, "Usage: vie [-version | filename]\n")
		os.Exit(1)
	}
	if len(os.Args) == 2 && (os.Args[1] == "-version" || os.Args[1] == "--version") {
		fmt.Println("vie " + vie.Version)
		return
	}

	logger := log.New(io.Discard, "", 0)
	if path := os.Getenv("VIE_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log: %s\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.New(f, "vie: ", log.LstdFlags)
	}

	e := vie.New(vie.Config{Logger: logger})
	if len(os.Args) == 2 {
		if err := e.Open(os.Args[1]); err != nil {
			logger.Printf("starting with an empty buffer: %v", err)
		}
	}

	if err := e.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
