// Public domain.

package main

import "github.com/soniakeys/twical/internal/tcprog"

func main() {
	tcprog.Main()
}
