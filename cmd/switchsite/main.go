package main

import "github.com/switchgames/site/cmd/switchsite/cmd"

func main() {
	cmd.Execute()
}
