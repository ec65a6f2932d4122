package security

import (
	"fmt"
	"strings"
)

const registrationPrefix = "ยืนยันการลงทะเบียนบัญชี "

// RegistrationMessage is the exact text a wallet signs to prove ownership
// when creating an account.
func RegistrationMessage(username string) string {
	return registrationPrefix + strings.TrimSpace(username)
}

// LoginMessage is the sign-in challenge for an already registered wallet.
func LoginMessage(wallet, nonce string) string {
	return fmt.Sprintf("Sign in to the learning platform\nWallet: %s\nNonce: %s", wallet, nonce)
}
