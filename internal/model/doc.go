// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model holds the chat transcript: an ordered, append-only list of
// role-tagged entries that the save command writes out verbatim.
package model
