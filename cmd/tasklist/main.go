package main

import "tasklist/internal/cli"

func main() {
	cli.Execute()
}
