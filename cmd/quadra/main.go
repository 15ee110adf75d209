package main

import (
	"quadrafund.io/quadra/cmd/quadra/cmd"
)

func main() {
	cmd.Execute()
}
