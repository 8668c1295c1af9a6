package util

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/p2p/enode"
)

// IsValidAccountString check account is a "0x"-prefixed hex string of exactly 20 bytes
func IsValidAccountString(account string) bool {
	if !strings.HasPrefix(account, "0x") {
		return false
	}
	b, err := hexutil.Decode(account)
	if err != nil {
		return false
	}
	return len(b) == common.AddressLength
}

// NormalizeAccountString return canonical form of account, lowercase without surrounding spaces
func NormalizeAccountString(account string) string {
	return strings.ToLower(strings.TrimSpace(account))
}

// IsValidNodeString check node is a complete enode URL with host and port
func IsValidNodeString(node string) bool {
	if !strings.HasPrefix(node, "enode://") {
		return false
	}
	if !strings.Contains(node, "@") {
		return false
	}
	if _, err := enode.ParseV4(node); err != nil {
		return false
	}
	return true
}

// NormalizeNodeString return node without surrounding spaces
func NormalizeNodeString(node string) string {
	return strings.TrimSpace(node)
}
