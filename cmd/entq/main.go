package main

import "entq/internal/cli"

func main() {
	cli.Execute()
}
