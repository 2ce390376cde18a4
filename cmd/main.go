package main

import "meshcircuit/cmd/cli"

func main() {
	cli.Execute()
}
