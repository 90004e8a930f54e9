package main

import (
	"os"

	"hufschlaeger.net/task-records/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
