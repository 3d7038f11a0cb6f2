// Package core contains the business logic of Mowakeb.
// It does not depend on the HTTP framework or on any concrete backend.
//
// The core package is organized into several sub-packages:
//
//   - domain: papers, result rows, selections, summaries, tracker entries and users
//   - state: the device-local key-value state (user, tracker cache, last search, selection)
//   - session: sign-in, sign-out and the preferred field
//   - tracker: local-first reading tracker reconciled with a remote table
//   - summary: search, result lists, the demo catalog and summary views with their long form
//   - audio: the narration player over a speech synthesizer
//   - chatbot: PDF upload and question answering conversation
//   - workers: the dispatcher that runs remote writes in the background
//   - errors: typed errors shared by services and handlers
//   - interfaces: contracts for the cache, HTTP client, logger and remote collaborators
//
// # Design Principles
//
//   - Remote collaborators are injected through interfaces and may be absent
//   - Local state is updated first; remote writes never block a caller
//   - Services are testable with in-memory caches and hand-written mocks
//
// # Usage Example
//
//	store := state.NewStore(memory.NewMemoryCache(), logger, "device")
//	dispatcher := workers.NewDispatcher(logger, workers.DefaultDispatcherConfig())
//	dispatcher.Start()
//	defer dispatcher.Stop()
//
//	trackerService := tracker.NewService(store, remoteTable, dispatcher, logger)
//	view, err := trackerService.AddEntry(ctx, domain.TrackerDraft{Title: "Attention Is All You Need"}, user)
package core
