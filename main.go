package main

import (
	"github.com/amnp95/godrm/cmd"
)

func main() {
	cmd.Execute()
}
