/*
Package ports defines the collaborator interfaces the statewalk core depends
on: action execution, arrival verification, state lookup and active-state
persistence. Adapters (memory, redis, test fakes) implement them; the core
never depends on a concrete backend.
*/
package ports
