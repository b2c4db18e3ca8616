// Package main hosts the filesorter CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once per invocation, builds
// the structured logger, and hands explicit source and destination roots to
// the organizer. Presentation lives here: the terminal progress line, the
// colored run summary, and the go-pretty tables for categories and history.
// Everything that moves files stays in the internal packages.
package main
