package main

import "github.com/dzjyyds666/qs/cmd"

func main() {
	cmd.Execute()
}
