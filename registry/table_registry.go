/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"sync"
)

// TableRegistry associates Go entity types with their collection binding:
// the table the type persists to and the partition its rows default into.

// Binding describes where rows of one entity type live.
type Binding struct {
	// Table is the collection name, e.g. "Orders".
	Table string
	// DefaultPartition groups rows when the caller supplies no partition.
	DefaultPartition string
}

var (
	tableRegistry = make(map[reflect.Type]Binding)
	mu            sync.RWMutex
)

// RegisterTable binds type T to a table name and default partition.
// Later registrations for the same type replace earlier ones.
func RegisterTable[T any](table, defaultPartition string) {
	var zero T
	t := reflect.TypeOf(zero)

	mu.Lock()
	defer mu.Unlock()
	tableRegistry[t] = Binding{Table: table, DefaultPartition: defaultPartition}
}

// GetBinding retrieves the binding for type T, if any.
func GetBinding[T any]() (Binding, bool) {
	var zero T
	t := reflect.TypeOf(zero)

	mu.RLock()
	defer mu.RUnlock()
	b, ok := tableRegistry[t]
	return b, ok
}
