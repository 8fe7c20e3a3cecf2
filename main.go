package main

import "gh-contrib-api/cmd"

func main() {
	cmd.Execute()
}
