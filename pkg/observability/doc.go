/*
Package observability provides prometheus instrumentation for the statewalk
engine: transition and state-entry counters, path search timing and region
resolution counts, bound to the engine through lifecycle hooks.
*/
package observability
