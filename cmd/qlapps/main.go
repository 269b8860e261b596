package main

import (
	"fmt"
	"os"
)

func main() {
	a := newApp()
	if err := a.rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		a.notifyError(err)
		os.Exit(1)
	}
}
