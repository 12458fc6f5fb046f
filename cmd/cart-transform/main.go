// Package main is the function-mode entry point: a cart snapshot on stdin, operations on stdout.
package main

import (
	"os"

	"github.com/noah-isme/cart-transform/cmd/cart-transform/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
