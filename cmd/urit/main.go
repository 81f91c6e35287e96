package main

import "github.com/GrahamMcBain/urit/internal/cli"

func main() {
	cli.Execute()
}
