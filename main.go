package main

import "github.com/naka-gawa/repo-browser/cmd"

func main() {
	cmd.Execute()
}
