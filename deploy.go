package main

import "github.com/siteworks/deploy/cmd"

func main() {
	cmd.Execute()
}
