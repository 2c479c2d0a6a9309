/*
Package domain contains the value types shared across the statewalk engine:
states, transitions, paths, screen regions, matches and the declarative
search-region dependency descriptors.

Types here carry no behavior beyond what their own data implies; the engine
mechanics live in internal/runtime and pkg/region.
*/
package domain
