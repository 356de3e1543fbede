// Package value turns stored entry payloads into client ready values.
//
// A stored entry carries one authoritative payload column chosen by its value type.
// Decode picks that column and normalizes it into a Payload, Resolver.Resolve then
// materializes it, enriching product and cms page references through the catalog.
// Every lookup failure degrades to a default, Resolve never returns an error.
package value
