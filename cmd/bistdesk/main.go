package main

import (
	"bistdesk/cmd"
)

func main() {
	cmd.Execute()
}
