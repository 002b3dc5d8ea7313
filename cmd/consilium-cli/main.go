// consilium-cli is an operator-facing CLI built on the same
// internal/runtime.Runtime construction path as consilium-server, for
// ad-hoc consult/status/task-runs commands.
package main

import "github.com/consilium-ai/consilium/cmd/consilium-cli/cmd"

func main() {
	cmd.Execute()
}
