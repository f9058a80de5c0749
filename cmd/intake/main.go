package main

import "github.com/underground-music/intake/internal/cli"

func main() {
	cli.Execute()
}
