package main

import "github.com/hupe1980/tinystore/cmd/tinystore/cmd"

func main() {
	cmd.Execute()
}
