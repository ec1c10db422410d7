package main

import "github.com/edwin/plugin-edwin/cmd"

func main() {
	cmd.Execute()
}
