// havengate — governance gate for a conversational wellness assistant.
package main

import "github.com/dkarpele/havengate/internal/cli"

func main() {
	cli.Execute()
}
