package main

import "sitegen_server/internal/cli"

func main() {
	cli.Execute()
}
