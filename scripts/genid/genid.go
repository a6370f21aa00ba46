package main

import (
	"flag"
	"fmt"

	"github.com/google/uuid"
)

// Prints fresh uids for patching collection documents by hand.
func main() {
	n := flag.Int("n", 1, "how many uids to print")
	flag.Parse()

	for i := 0; i < *n; i++ {
		fmt.Println(uuid.NewString())
	}
}
