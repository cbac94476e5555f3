package main

import "github.com/lcary/tide-tracker/internal/cli"

func main() {
	cli.Execute()
}
