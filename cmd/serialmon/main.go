/*
Copyright © 2025 Erik Wahlström <erik@embeddedtools.io>
*/
package main

import (
	"github.com/embeddedtools/serialmon/cmd"
)

func main() {
	cmd.Execute()
}
