package main

import "github.com/Makepad-fr/tada/internal/cli"

func main() {
	cli.Execute()
}
