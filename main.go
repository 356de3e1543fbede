package main

import (
	"os"

	"github.com/orkank/AppConfig/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
