package main

import "github.com/rustyeddy/fxpl/internal/cli"

func main() {
	cli.Execute()
}
