// Command git-fixup attributes staged hunks to the topic commits they fix
// up and records one synthetic fixup commit per target.
package main

import "github.com/bwoodley/git-fixup/commands"

func main() {
	commands.Execute()
}
