// Package plugin hosts Lua filter scripts that transform document text on
// load and save. Filters are pure text-to-text functions; they run outside
// the editing core and can never make an operation fail.
package plugin
