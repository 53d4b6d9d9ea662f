/*
Package stateregistry is an in-memory simulation state registry: a mapping
from variable addresses to indexes and current values.

Addresses use a dot-separated path format in which each segment may carry
an index, e.g. `zone.infiltration` or `zone.heater[1]`. Registering a
variable returns a Variable handle; its Index is stable for the lifetime of
the registry and is the only thing a simulation engine needs to read or
drive the value during a run.
*/
package stateregistry
