package main

import "vtcon/internal/cli"

func main() {
	cli.Execute()
}
