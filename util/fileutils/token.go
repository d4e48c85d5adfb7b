package fileutils

import (
	"github.com/zalando/go-keyring"
)

const keyringService = "packsmith"
const keyringUser = "modrinth_token"

// The OS keyring is the fallback token home for machines where exporting
// MODRINTH_TOKEN per shell is impractical. CI should keep using the env var.

func SetToken(token string) error {
	return keyring.Set(keyringService, keyringUser, token)
}

func GetToken() (string, error) {
	return keyring.Get(keyringService, keyringUser)
}

func DeleteToken() error {
	return keyring.Delete(keyringService, keyringUser)
}
