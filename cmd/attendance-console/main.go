package main

import (
	"context"
	"fmt"
	"os"

	"github.com/noah-isme/sma-adp-console/internal/cli"
)

// @title Attendance Admin Console
// @version 0.1.0
// @description Local console mirroring the attendance backend's admin state
// @BasePath /
// @schemes http

func main() {
	if err := cli.Execute(context.Background(), cli.Options{}, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
