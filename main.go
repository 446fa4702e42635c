package main

import "github.com/frahmantamala/absence-request/cmd"

func main() {
	cmd.Execute()
}
