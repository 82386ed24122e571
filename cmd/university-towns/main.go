package main

import "github.com/pfrederiksen/university-towns/internal/cli"

func main() {
	cli.Execute()
}
