package main

import "github.com/zjrosen/forkline/cmd"

func main() {
	cmd.Execute()
}
