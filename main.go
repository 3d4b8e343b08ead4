// Idiomatic entrypoint for the Cobra CLI; delegates to cmd/root.go.
package main

import (
	"github.com/ccsim/castersim/cmd"
)

func main() {
	cmd.Execute()
}
