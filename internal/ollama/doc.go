// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama is the HTTP client for the Ollama generate API.
//
// # Key Types
//
//   - Client: issues POST /api/generate, buffered or streamed
//   - Stream: iterator over the NDJSON lines of a streamed reply
//   - Sink: receives each fragment; PrinterSink and Accumulator are provided
//   - ClientError: typed transport failure (NotRunning, Timeout, ...)
//
// # Usage
//
// Buffered:
//
//	resp, err := client.Generate(ctx, ollama.GenerateRequest{Model: "lillyv2", Prompt: p})
//	fmt.Println(resp.Response)
//
// Streamed into stdout while collecting the text:
//
//	stream, err := client.GenerateStream(ctx, ollama.GenerateRequest{Model: "lillyv2", Prompt: p})
//	if err != nil {
//	    return err
//	}
//	defer stream.Close()
//	acc := ollama.NewAccumulator()
//	err = ollama.Drain(stream, ollama.NewPrinterSink(os.Stdout), acc)
//	text := acc.Content()
package ollama
