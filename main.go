package main

import "github.com/MyCarrier-DevOps/go-matchconf/cmd"

func main() {
	cmd.Execute()
}
