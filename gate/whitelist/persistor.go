package whitelist

import (
	"github.com/ZzzYtl/MyGate/models"
	"github.com/pingcap/errors"
)

// ErrWhitelistFileSync means the whitelist kept in memory and the one
// in the permission store no longer hold the same entries
var ErrWhitelistFileSync = errors.New("whitelist out of sync with permission store")

// Category means one whitelist kept in the permission store
type Category int

// whitelist categories
const (
	Accounts Category = iota
	Nodes
)

// String implement fmt.Stringer
func (c Category) String() string {
	switch c {
	case Accounts:
		return "accounts"
	case Nodes:
		return "nodes"
	}
	return "unknown"
}

// Persistor writes one whitelist category through to the permission
// store and checks what the store holds against an expected state
type Persistor interface {
	Update(category Category, entries []string) error
	VerifyConfigFileMatchesState(category Category, entries []string) error
}

type storePersistor struct {
	store *models.Store
}

// NewStorePersistor constructor of Persistor over a permission store
func NewStorePersistor(store *models.Store) Persistor {
	return &storePersistor{store: store}
}

// Update replace one category in the store, entries of the other
// category are written back untouched
func (p *storePersistor) Update(category Category, entries []string) error {
	permission, err := p.store.LoadPermissionList()
	if err != nil {
		return errors.Trace(err)
	}

	switch category {
	case Accounts:
		permission.AccountsWhitelist = append([]string{}, entries...)
	case Nodes:
		permission.NodesWhitelist = append([]string{}, entries...)
	}

	return errors.Trace(p.store.UpdatePermissionList(permission))
}

// VerifyConfigFileMatchesState read one category back from the store
// and compare it with the expected entries, order is not significant
func (p *storePersistor) VerifyConfigFileMatchesState(category Category, entries []string) error {
	permission, err := p.store.LoadPermissionList()
	if err != nil {
		return errors.Trace(err)
	}

	var persisted []string
	switch category {
	case Accounts:
		persisted = permission.AccountsWhitelist
	case Nodes:
		persisted = permission.NodesWhitelist
	}

	if !sameEntries(persisted, entries) {
		return errors.Trace(ErrWhitelistFileSync)
	}
	return nil
}

func sameEntries(a, b []string) bool {
	as := make(map[string]bool, len(a))
	for _, entry := range a {
		as[entry] = true
	}
	bs := make(map[string]bool, len(b))
	for _, entry := range b {
		bs[entry] = true
	}
	if len(as) != len(bs) {
		return false
	}
	for entry := range as {
		if !bs[entry] {
			return false
		}
	}
	return true
}
