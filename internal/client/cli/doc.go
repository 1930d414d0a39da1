// Package cli provides the interactive PlanHub command-line client.
//
// It wires configuration, local sqlite state, the typed API client, the
// query cache and an interactive REPL. Typical flow: sign in, browse
// participants/providers/invoices/plans through cached reads, upload invoice
// documents, and watch their validation settle.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
