// Copyright 2025 The procsync authors. All rights reserved.

package procsync

import (
	"sync"
)

type objectKind int

const (
	kindMutex objectKind = iota
	kindCondition
	kindCounter
)

type registryKey struct {
	kind objectKind
	name string
}

// registry holds one lazily constructed instance per (kind, name) pair.
// Unlinking a name does not evict a live instance: a process, which already
// opened an object, keeps using its handle until exit.
type registry struct {
	mu      sync.Mutex
	objects map[registryKey]interface{}
}

var globalRegistry = &registry{objects: make(map[registryKey]interface{})}

// get returns the instance for the given key, constructing it via ctor
// on first access. ctor runs outside the registry lock, because composite
// constructors open other primitives and re-enter the registry. Racing
// constructions are resolved on insert: the first stored instance wins and
// the loser is discarded, which is safe, since every constructor is an
// open-or-create over the same OS objects.
func (r *registry) get(kind objectKind, name string, ctor func() (interface{}, error)) (interface{}, error) {
	key := registryKey{kind: kind, name: name}
	r.mu.Lock()
	if obj, ok := r.objects[key]; ok {
		r.mu.Unlock()
		return obj, nil
	}
	r.mu.Unlock()
	obj, err := ctor()
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.objects[key]; ok {
		return existing, nil
	}
	r.objects[key] = obj
	return obj, nil
}
