package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-offergen/cmd/offergen/cmd"
)

func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "offergen: %v\n", err)
		os.Exit(1)
	}
}
