package main

import (
	"github.com/Ritenoob/miniature-enigma/pkg/cmd"
)

func main() {
	cmd.Execute()
}
