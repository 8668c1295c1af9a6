package models

import (
	"fmt"

	"github.com/ZzzYtl/MyGate/util"
)

// PermissionList means permission model stored in the permission file
type PermissionList struct {
	AccountsWhitelist []string `json:"accounts-whitelist"`
	NodesWhitelist    []string `json:"nodes-whitelist"`
}

// Encode encode json
func (p *PermissionList) Encode() []byte {
	return JSONEncode(p)
}

// Canonicalize rewrite every entry into its canonical form
func (p *PermissionList) Canonicalize() {
	for i, account := range p.AccountsWhitelist {
		p.AccountsWhitelist[i] = util.NormalizeAccountString(account)
	}
	for i, node := range p.NodesWhitelist {
		p.NodesWhitelist[i] = util.NormalizeNodeString(node)
	}
}

// Verify verify permission list contents
func (p *PermissionList) Verify() error {
	if err := p.verifyAccounts(); err != nil {
		return err
	}
	return p.verifyNodes()
}

func (p *PermissionList) verifyAccounts() error {
	seen := make(map[string]bool, len(p.AccountsWhitelist))
	for _, account := range p.AccountsWhitelist {
		if !util.IsValidAccountString(account) {
			return fmt.Errorf("invalid account in permission list: %s", account)
		}
		if seen[account] {
			return fmt.Errorf("account duped in permission list: %s", account)
		}
		seen[account] = true
	}
	return nil
}

func (p *PermissionList) verifyNodes() error {
	seen := make(map[string]bool, len(p.NodesWhitelist))
	for _, node := range p.NodesWhitelist {
		if !util.IsValidNodeString(node) {
			return fmt.Errorf("invalid node in permission list: %s", node)
		}
		if seen[node] {
			return fmt.Errorf("node duped in permission list: %s", node)
		}
		seen[node] = true
	}
	return nil
}
