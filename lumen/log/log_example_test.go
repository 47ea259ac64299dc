package log_test

import (
	"fmt"

	"github.com/lumenpay/lib-lumen/lumen/log"
)

func ExampleParseLevel() {
	level, err := log.ParseLevel("warning")

	fmt.Println(err == nil)
	fmt.Println(level.String())

	// Output:
	// true
	// warn
}

func ExampleSanitize() {
	fmt.Println(log.Sanitize("GABC\n1234\tinjected"))

	// Output:
	// GABC\n1234\tinjected
}
