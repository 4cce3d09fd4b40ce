package shared

import "sync"

// KeyedMutex serializes mutating operations per entity key so that within
// one process, two writers never interleave a read-merge-write against the
// same row. The backing spreadsheet offers no locking or compare-and-swap,
// so cross-process writers remain unordered; that limitation is documented
// on the store, not hidden here.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex builds an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedLock)}
}

// Lock acquires the mutex for key and returns the matching unlock func.
// Not reentrant: a goroutine holding a key must not lock it again.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// VariantLockKey builds the writer lock key for a product variant.
func VariantLockKey(variantID string) string { return "variant:" + variantID }

// DesignLockKey builds the writer lock key for a design.
func DesignLockKey(designID string) string { return "design:" + designID }

// DealerLockKey builds the writer lock key for a dealer account.
func DealerLockKey(dealerID string) string { return "dealer:" + dealerID }

// InvoiceLockKey builds the writer lock key for an invoice.
func InvoiceLockKey(invoiceID string) string { return "invoice:" + invoiceID }

// JobLockKey builds the writer lock key for a plating job.
func JobLockKey(jobID string) string { return "job:" + jobID }

// PrefixLockKey builds the lock key guarding id generation for a prefix.
func PrefixLockKey(prefix string) string { return "nextid:" + prefix }
