// navcheck runs the website navigation checks against a running site.
//
// Usage:
//
//	navcheck run                                  # built-in checks against http://localhost:3000
//	navcheck run --fixtures testdata/navigation.yaml --base-url http://localhost:4000
//	navcheck watch --fixtures testdata/navigation.yaml
//	navcheck cases
//
// Exit status is 1 if any case fails.
package main

import "github.com/liamsorsby/website-e2e/internal/cli"

func main() {
	cli.Execute()
}
