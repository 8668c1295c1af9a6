package whitelist

import (
	"sync"

	"github.com/ZzzYtl/MyGate/log"
	"github.com/ZzzYtl/MyGate/models"
	"github.com/ZzzYtl/MyGate/util"
	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/pingcap/errors"
)

// Controller keeps one whitelist category in memory and writes every
// mutation through to the permission store. Mutations run under the
// write lock, membership checks only take the read lock.
type Controller struct {
	sync.RWMutex
	category  Category
	entries   *linkedhashset.Set
	store     *models.Store
	persistor Persistor
	isValid   func(string) bool
	normalize func(string) string
}

// NewAccountController constructor of the accounts controller, seeded
// from the prepared permission config
func NewAccountController(cfg *models.PermissionConfig, store *models.Store, persistor Persistor) *Controller {
	c := newController(Accounts, store, persistor, util.IsValidAccountString, util.NormalizeAccountString)
	if cfg != nil && cfg.AccountWhitelistEnable {
		c.seed(cfg.Accounts)
	}
	return c
}

// NewNodeController constructor of the nodes controller, seeded from
// the prepared permission config
func NewNodeController(cfg *models.PermissionConfig, store *models.Store, persistor Persistor) *Controller {
	c := newController(Nodes, store, persistor, util.IsValidNodeString, util.NormalizeNodeString)
	if cfg != nil && cfg.NodeWhitelistEnable {
		c.seed(cfg.Nodes)
	}
	return c
}

func newController(category Category, store *models.Store, persistor Persistor,
	isValid func(string) bool, normalize func(string) string) *Controller {
	return &Controller{
		category:  category,
		entries:   linkedhashset.New(),
		store:     store,
		persistor: persistor,
		isValid:   isValid,
		normalize: normalize,
	}
}

// seeding loads the store state into memory, it never writes the store
func (c *Controller) seed(entries []string) {
	c.Lock()
	defer c.Unlock()
	for _, entry := range entries {
		c.entries.Add(c.normalize(entry))
	}
}

// Category return the category this controller keeps
func (c *Controller) Category() Category {
	return c.category
}

// AddEntries add entries to the whitelist and persist the new state
func (c *Controller) AddEntries(entries []string) Result {
	result := c.add(entries)
	recordOperation(c.category, opAdd, result)
	recordSize(c.category, c.Size())
	return result
}

func (c *Controller) add(entries []string) Result {
	if result := validateEntries(entries, c.isValid, c.normalize); result != Success {
		return result
	}

	c.Lock()
	defer c.Unlock()

	oldWhitelist := c.whitelistLocked()
	for _, entry := range entries {
		if c.entries.Contains(c.normalize(entry)) {
			return ErrorExistingEntry
		}
	}

	for _, entry := range entries {
		c.entries.Add(c.normalize(entry))
	}
	return c.syncLocked(oldWhitelist)
}

// RemoveEntries remove entries from the whitelist and persist the new
// state
func (c *Controller) RemoveEntries(entries []string) Result {
	result := c.remove(entries)
	recordOperation(c.category, opRemove, result)
	recordSize(c.category, c.Size())
	return result
}

func (c *Controller) remove(entries []string) Result {
	if result := validateEntries(entries, c.isValid, c.normalize); result != Success {
		return result
	}

	c.Lock()
	defer c.Unlock()

	oldWhitelist := c.whitelistLocked()
	for _, entry := range entries {
		if !c.entries.Contains(c.normalize(entry)) {
			return ErrorAbsentEntry
		}
	}

	for _, entry := range entries {
		c.entries.Remove(c.normalize(entry))
	}
	return c.syncLocked(oldWhitelist)
}

// syncLocked runs the persist protocol: check the store still holds
// the previous state, write the new one, then read the write back. An
// IO failure restores the old memory state. A content mismatch is
// reported without touching memory.
func (c *Controller) syncLocked(oldWhitelist []string) Result {
	newWhitelist := c.whitelistLocked()

	if err := c.persistor.VerifyConfigFileMatchesState(c.category, oldWhitelist); err != nil {
		return c.persistFailureLocked(oldWhitelist, err)
	}
	if err := c.persistor.Update(c.category, newWhitelist); err != nil {
		c.revertLocked(oldWhitelist)
		log.Warn("persist %s whitelist failed, revert to previous state, %v", c.category, err)
		return ErrorWhitelistPersistFail
	}
	if err := c.persistor.VerifyConfigFileMatchesState(c.category, newWhitelist); err != nil {
		return c.persistFailureLocked(oldWhitelist, err)
	}
	return Success
}

func (c *Controller) persistFailureLocked(oldWhitelist []string, err error) Result {
	if errors.Cause(err) == ErrWhitelistFileSync {
		log.Warn("%s whitelist out of sync with permission store", c.category)
		return ErrorWhitelistFileSync
	}
	c.revertLocked(oldWhitelist)
	log.Warn("persist %s whitelist failed, revert to previous state, %v", c.category, err)
	return ErrorWhitelistPersistFail
}

func (c *Controller) revertLocked(oldWhitelist []string) {
	c.entries.Clear()
	for _, entry := range oldWhitelist {
		c.entries.Add(entry)
	}
}

func (c *Controller) whitelistLocked() []string {
	values := c.entries.Values()
	list := make([]string, 0, len(values))
	for _, value := range values {
		list = append(list, value.(string))
	}
	return list
}

// Contains report whether entry is whitelisted
func (c *Controller) Contains(entry string) bool {
	c.RLock()
	defer c.RUnlock()
	return c.entries.Contains(c.normalize(entry))
}

// GetWhitelist return a copy of the whitelist in insertion order
func (c *Controller) GetWhitelist() []string {
	c.RLock()
	defer c.RUnlock()
	return c.whitelistLocked()
}

// Size return the number of whitelisted entries
func (c *Controller) Size() int {
	c.RLock()
	defer c.RUnlock()
	return c.entries.Size()
}

// Reload drop the in memory whitelist and rebuild it from the
// permission store. The old state is restored when the store cannot
// be read. Reload never writes the store.
func (c *Controller) Reload() error {
	err := c.reload()
	recordReload(c.category, err)
	recordSize(c.category, c.Size())
	return err
}

func (c *Controller) reload() error {
	c.Lock()
	defer c.Unlock()

	oldWhitelist := c.whitelistLocked()
	c.entries.Clear()

	permission, err := c.store.LoadPermissionList()
	if err != nil {
		c.revertLocked(oldWhitelist)
		return errors.Annotatef(err, "reload %s whitelist, content was not updated", c.category)
	}

	for _, entry := range c.categoryEntries(permission) {
		c.entries.Add(c.normalize(entry))
	}
	return nil
}

func (c *Controller) categoryEntries(permission *models.PermissionList) []string {
	if c.category == Accounts {
		return permission.AccountsWhitelist
	}
	return permission.NodesWhitelist
}

// input checks shared by add and remove, they run in a fixed order
// and report the first failure only
func validateEntries(entries []string, isValid func(string) bool, normalize func(string) string) Result {
	if len(entries) == 0 {
		return ErrorEmptyEntry
	}
	for _, entry := range entries {
		if !isValid(entry) {
			return ErrorInvalidEntry
		}
	}
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		canonical := normalize(entry)
		if seen[canonical] {
			return ErrorDuplicatedEntry
		}
		seen[canonical] = true
	}
	return Success
}
