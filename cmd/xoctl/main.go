package main

import (
	"github.com/mvidak/tictactoe-go/internal/cli"
)

func main() {
	cli.Execute()
}
