// Package todolist holds build metadata shared by the binaries.
package todolist

// Version is the release version of the todolist service.
const Version = "0.1.0"

// ModulePath is the Go module path of this repository.
const ModulePath = "github.com/mesh-intelligence/todolist"
