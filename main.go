package main

import "github.com/kebairia/dmsave/cmd"

func main() {
	cmd.Execute()
}
