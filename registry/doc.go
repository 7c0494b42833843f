/*
Package registry maps Go entity types to their storage bindings.

A binding names the table an entity type persists to and the default
partition its rows fall into when the caller supplies none:

	registry.RegisterTable[models.Order]("Orders", "Orders")

	b, ok := registry.GetBinding[models.Order]()
	// b.Table == "Orders", b.DefaultPartition == "Orders"

The registry is thread-safe and should be populated during initialization,
typically when the stores are constructed at process start.
*/
package registry
