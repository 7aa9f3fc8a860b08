package main

import (
	"github.com/tictacmatch/tictacmatch-go/internal/cli"
)

func main() {
	cli.Execute()
}
