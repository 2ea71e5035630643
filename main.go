// Copyright © 2025 The lmnls authors

package main

import "github.com/lmntal/lmnls/cmd"

func main() {
	cmd.Execute()
}
