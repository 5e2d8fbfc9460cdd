package main

import "github.com/mcoot/deckbuilder/internal/cli"

func main() {
	cli.Execute()
}
