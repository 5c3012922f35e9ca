package main

import (
	"log"

	"bistdesk/cmd"
	"bistdesk/internal/util"
)

func main() {
	settings, err := util.LoadSettings()
	if err != nil {
		log.Fatal(err)
	}
	apiHandler, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(apiHandler)

	if err := apiHandler.StartApi(settings.Port); err != nil {
		log.Fatal(err)
	}
}
