// Package main is the entry of the cohere command.
package main

import "github.com/sarchlab/coherence/cohere/cmd"

func main() {
	cmd.Execute()
}
