// Command fruitgraph runs the fruit selection workflows on the stategraph engine.
package main

import (
	"os"
)

func main() {
	os.Exit(Execute(os.Stdout, os.Stderr, os.Args[1:]))
}
