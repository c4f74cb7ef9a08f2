package main

import (
	"os"

	"github.com/msto63/quill/cmd/quill/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
