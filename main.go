package main

import "github.com/deskforensics/go-tabstate/cmd"

func main() {
	cmd.Execute()
}
