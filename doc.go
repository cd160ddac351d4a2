// Copyright 2025 The procsync authors. All rights reserved.

/*
Package procsync provides named synchronization primitives, which are visible
across process boundaries. Unrelated processes coordinate through OS-named
objects instead of a shared address space:

	NamedMutex     - a binary named semaphore.
	NamedCondition - a process-shared condition variable.
	NamedCounter   - an atomic integer in a named shared memory segment.
	SharedRWLock   - a shared/exclusive lock with upgrade support,
	                 composed of the three primitives above.

Every primitive is keyed by a name. A name may contain latin letters, digits,
'_', '-' and '.', and is mapped to a single process-wide instance per
(name, primitive kind) pair. The underlying OS objects are created lazily on
first access and outlive the process; Unlink* functions remove a name from the
OS namespace without invalidating already opened handles.

On unix the primitives are built on SysV semaphores and shared memory files
and need no special privilege. On windows they are built on named kernel
objects under the Global\ namespace, which requires administrative rights;
windows is an API-compatible, but semantically weaker target (see
NamedCondition.NotifyAll).
*/
package procsync
