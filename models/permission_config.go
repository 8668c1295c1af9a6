package models

// PermissionConfig is a snapshot of the permission source split by
// category, rebuilt from scratch on every load
type PermissionConfig struct {
	AccountWhitelistEnable bool
	NodeWhitelistEnable    bool
	Accounts               []string
	Nodes                  []string
}

// BuildPermissionConfig load the permission list from the store and
// build a fresh config snapshot of the enabled categories
func BuildPermissionConfig(store *Store, accountEnable, nodeEnable bool) (*PermissionConfig, error) {
	cfg := &PermissionConfig{
		AccountWhitelistEnable: accountEnable,
		NodeWhitelistEnable:    nodeEnable,
	}
	if !accountEnable && !nodeEnable {
		return cfg, nil
	}

	permission, err := store.LoadPermissionList()
	if err != nil {
		return nil, err
	}
	if accountEnable {
		cfg.Accounts = append([]string{}, permission.AccountsWhitelist...)
	}
	if nodeEnable {
		cfg.Nodes = append([]string{}, permission.NodesWhitelist...)
	}
	return cfg, nil
}
