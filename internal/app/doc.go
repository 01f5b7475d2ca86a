// Package app coordinates the editing core into a working session.
//
// A Session owns one open document. Edit requests from a frontend go
// through the session, which hands them to the engine, installs the
// result as the canonical document text, tracks focus and the undo
// history, and runs Lua filters on load and save. Document
// normalization is deferred while a block is being edited and applied
// when focus leaves or the document is saved.
//
// The package also provides the application's leveled Logger.
package app
