// Package xlayout is the rendering-and-routing core of a structured logging
// library: composable layouts that render log events to text or typed
// values, level filters that decide per rule which severities pass, and a
// per-flow diagnostic context stack with copy-on-fork semantics.
//
// The package performs no I/O and spawns nothing; it is invoked
// synchronously by caller threads. Destinations, configuration parsing and
// template tokenization live outside and talk to this core through Layout,
// LevelFilter, Destination and Event.
package xlayout
