//go:build mage

// Package main provides build targets for the todolist project using Mage.
//
// Usage:
//
//	mage build          Compile the todolist binary to bin/
//	mage serve          Build and run the API on the default address
//	mage test:all       Run all tests
//	mage test:race      Run all tests with the race detector
//	mage test:cover     Run all tests and write coverage.out
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install todolist to GOPATH/bin
package main
