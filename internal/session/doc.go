// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the mutable state of one chat run.
//
// A Session is created once at startup and passed explicitly to every command
// handler. It carries the model and server the responder talks to, the
// transcript, the loaded file context and the current path that relative file
// operations resolve against.
//
// The REPL owns the session and mutates it from a single goroutine, so no
// locking is done.
package session
