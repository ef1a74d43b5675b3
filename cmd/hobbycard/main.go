// hobbycard renders hobby trading cards from a photo and a theme.
//
// Usage:
//
//	hobbycard render -o card.png --subject subject.json [--theme classic]
//	hobbycard themes [--json]
//	hobbycard serve [--addr :8080]
//	hobbycard init
package main

import "github.com/xob0t/hobbycard/cmd/hobbycard/cmd"

func main() {
	cmd.Execute()
}
