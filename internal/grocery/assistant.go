package grocery

import (
	"sync"

	"go.uber.org/zap"
)

// Store is the persistence contract the assistant depends on. Loads absorb
// missing or corrupt data as empty collections; they never fail for that
// reason. History loads return keys already lower-cased and de-duplicated.
type Store interface {
	LoadList() ([]Item, error)
	SaveList(items []Item) error
	LoadHistory() (map[string]Date, error)
	SaveHistory(history map[string]Date) error
	LoadCatalog() (map[string][]string, error)
	Close() error
}

// Option customizes an Assistant.
type Option func(*Assistant)

// WithClock overrides the assistant's notion of "today". Tests use this to
// pin the calendar.
func WithClock(now func() Date) Option {
	return func(a *Assistant) { a.now = now }
}

// WithRepurchaseAfterDays overrides the missing-item suggestion threshold.
func WithRepurchaseAfterDays(days int) Option {
	return func(a *Assistant) { a.repurchaseAfterDays = days }
}

// WithExpiryWindowDays overrides the expiry reminder window.
func WithExpiryWindowDays(days int) Option {
	return func(a *Assistant) { a.expiryWindowDays = days }
}

// Assistant owns the grocery list, the purchase history and the category
// catalog, persisting every mutation through its Store. It is constructed
// once at startup and passed to whatever front-end needs it; there is no
// package-level instance.
//
// The core is single-user and synchronous. The mutex only exists so the
// data-file watcher can trigger Reload from its own goroutine.
type Assistant struct {
	mu    sync.RWMutex
	store Store
	log   *zap.Logger

	items   []Item
	history map[string]Date
	catalog map[string][]string

	now                 func() Date
	repurchaseAfterDays int
	expiryWindowDays    int
}

// New builds an Assistant and loads all three collections from the store.
func New(store Store, log *zap.Logger, opts ...Option) (*Assistant, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Assistant{
		store:               store,
		log:                 log,
		now:                 Today,
		repurchaseAfterDays: DefaultRepurchaseAfterDays,
		expiryWindowDays:    DefaultExpiryWindowDays,
	}
	for _, opt := range opts {
		opt(a)
	}

	items, err := store.LoadList()
	if err != nil {
		return nil, err
	}
	history, err := store.LoadHistory()
	if err != nil {
		return nil, err
	}
	catalog, err := store.LoadCatalog()
	if err != nil {
		return nil, err
	}

	a.items = items
	a.history = history
	a.catalog = catalog
	a.log.Debug("assistant loaded",
		zap.Int("items", len(items)),
		zap.Int("history", len(history)),
		zap.Int("categories", len(catalog)))
	return a, nil
}

// Reload re-reads the list and history from the store, picking up external
// edits to the backing files. The catalog is static and not re-read.
func (a *Assistant) Reload() error {
	items, err := a.store.LoadList()
	if err != nil {
		return err
	}
	history, err := a.store.LoadHistory()
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.items = items
	a.history = history
	a.mu.Unlock()
	a.log.Debug("assistant reloaded", zap.Int("items", len(items)))
	return nil
}

// Add appends an item to the list, persists the list and returns the stored
// item. Duplicate names are allowed.
func (a *Assistant) Add(item Item) (Item, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.items = append(a.items, item)
	if err := a.store.SaveList(a.items); err != nil {
		return Item{}, err
	}
	a.log.Info("item added", zap.String("name", item.Name))
	return item, nil
}

// Remove deletes every list entry whose name matches case-insensitively.
// It reports whether anything was removed and persists only on change.
func (a *Assistant) Remove(name string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := NormalizeName(name)
	kept := a.items[:0]
	for _, item := range a.items {
		if item.Key() != key {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(a.items) {
		return false, nil
	}
	a.items = kept
	if err := a.store.SaveList(a.items); err != nil {
		return false, err
	}
	a.log.Info("item removed", zap.String("name", name))
	return true, nil
}

// Items returns the current list. The slice is the assistant's own backing
// storage; callers must not mutate it.
func (a *Assistant) Items() []Item {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.items
}

// Categories returns the full category catalog.
func (a *Assistant) Categories() map[string][]string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.catalog
}

// CategoryItems returns the catalog entries for one category, nil when the
// category is unknown.
func (a *Assistant) CategoryItems(category string) []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.catalog[category]
}

// MissingItems suggests previously purchased items that are absent from the
// list and older than the repurchase threshold.
func (a *Assistant) MissingItems() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return MissingItems(a.items, a.history, a.now(), a.repurchaseAfterDays)
}

// HealthierAlternatives suggests substitutes for listed items.
func (a *Assistant) HealthierAlternatives() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return HealthierAlternatives(a.items)
}

// ExpiryReminders lists items expiring within the reminder window.
func (a *Assistant) ExpiryReminders() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return ExpiryReminders(a.items, a.now(), a.expiryWindowDays)
}

// MarkPurchased stamps today's date into the purchase history for every
// listed item, persists the history, then clears and persists the list.
//
// The two saves are not transactional: a failure between them leaves history
// updated but the list intact. Known gap, accepted for a single local user.
func (a *Assistant) MarkPurchased() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	today := a.now()
	for _, item := range a.items {
		a.history[item.Key()] = today
	}
	if err := a.store.SaveHistory(a.history); err != nil {
		return "", err
	}
	a.items = []Item{}
	if err := a.store.SaveList(a.items); err != nil {
		return "", err
	}
	a.log.Info("purchases closed", zap.String("date", today.String()))
	return "Purchase history updated and grocery list cleared.", nil
}

// Close releases the underlying store.
func (a *Assistant) Close() error {
	return a.store.Close()
}
