package main

import "github.com/frahmantamala/helpdesk/cmd"

func main() {
	cmd.Execute()
}
