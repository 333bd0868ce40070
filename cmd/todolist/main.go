// Command todolist serves the teams and to-do items API.
package main

import "github.com/mesh-intelligence/todolist/internal/cli"

func main() {
	cli.Execute()
}
