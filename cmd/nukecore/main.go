package main

import "github.com/sandeepkv93/nukecore/cmd/nukecore/root"

func main() {
	root.Execute()
}
