// Command alice is a threshold key-management tool. It stores keys and
// protocol state locally and exchanges protocol messages as YAML on
// stdin and stdout.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := run(context.Background(), os.Args, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "alice:", err)
		os.Exit(1)
	}
}
