package main

import (
	"os"

	"github.com/harrison/grit/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
