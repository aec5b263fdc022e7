package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [port]\n\nServes /status and /task on port (default %d).\n",
		os.Args[0], DefaultPort)
}

func parsePort(args []string) (int, error) {
	switch len(args) {
	case 0:
		return DefaultPort, nil
	case 1:
		p, err := strconv.Atoi(args[0])
		if err != nil || p < 0 || p > 65535 {
			return 0, fmt.Errorf("invalid port %q", args[0])
		}
		return p, nil
	}
	return 0, fmt.Errorf("expected at most one argument, got %d", len(args))
}

func main() {
	flag.Usage = usage
	flag.Parse()

	port, err := parsePort(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		os.Exit(2)
	}

	srv := NewServer(Config{Port: port, Workers: DefaultWorkers})
	if err := srv.ListenAndServe(context.Background()); err != nil && !errors.Is(err, ErrServerClosed) {
		log.Fatalf("E %v", err)
	}
}
