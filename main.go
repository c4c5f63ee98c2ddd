package main

import "github.com/ssingla/astralyogi/cmd"

func main() {
	cmd.Execute()
}
