package main

import "protest-tracker/cmd/server/cmd"

func main() {
	cmd.Execute()
}
