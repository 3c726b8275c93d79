package main

import (
	"os"

	"github.com/crimson-sun/loglens/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
