package main

import "github.com/pfrederiksen/mma-odds/internal/cli"

func main() {
	cli.Execute()
}
