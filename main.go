package main

import (
	"github.com/daedaleanai/nbt/cmd"
)

func main() {
	cmd.Execute()
}
