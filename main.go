package main

import "github.com/MyCarrier-DevOps/go-devkit/cmd"

func main() {
	cmd.Execute()
}
