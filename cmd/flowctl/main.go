package main

import "github.com/oy3o/flow/internal/cli"

func main() {
	cli.Execute()
}
