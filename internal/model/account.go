package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeAccounts parses the signed-up accounts list. An empty or blank value
// is an empty list.
func DecodeAccounts(data []byte) ([]Account, error) {
	if strings.TrimSpace(string(data)) == "" {
		return []Account{}, nil
	}
	var accounts []Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	if accounts == nil {
		accounts = []Account{}
	}
	return accounts, nil
}

// FindAccountByEmail returns the index of the account with the given email, or
// -1. Emails compare case-insensitively.
func FindAccountByEmail(accounts []Account, email string) int {
	for i := range accounts {
		if strings.EqualFold(accounts[i].Email, email) {
			return i
		}
	}
	return -1
}
