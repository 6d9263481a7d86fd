package main

import "github.com/supplylens/supplylens/supplyctl/internal/cmd"

func main() {
	cmd.Execute()
}
