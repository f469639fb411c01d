//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the qatrack project using Mage.
//
// Usage:
//
//	mage build          Compile qatrack binary to bin/
//	mage serve          Build and run the HTTP API
//	mage test:all       Run all tests
//	mage test:race      Run all tests with the race detector
//	mage test:cover     Write coverage.out and print a summary
//	mage lint           Run golangci-lint
//	mage vet            Run go vet
//	mage clean          Remove build artifacts
//	mage install        Install qatrack to GOPATH/bin
//	mage stats          Print Go LOC per directory
package main
