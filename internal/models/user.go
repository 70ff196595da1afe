// Package models defines the records managed by the Sarthi state core:
// users, benefit applications and notifications.
package models

import (
	"errors"

	"golang.org/x/text/language"
)

var ErrInvalidLanguage = errors.New("invalid language tag")

// User is a registered citizen. Mobile is the natural authentication key and
// must stay unique across the seed list and the registered-user ledger.
// MPIN is a shared secret compared by exact value; hashing it is explicitly
// out of scope for the demo core.
type User struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email"`
	Language string `json:"language"`
	MPIN     string `json:"mpin"`
}

// Merge returns a copy of u with the non-empty fields of patch applied.
// ID is never taken from the patch: identifiers are immutable once assigned.
func (u User) Merge(patch User) User {
	if patch.FullName != "" {
		u.FullName = patch.FullName
	}
	if patch.Mobile != "" {
		u.Mobile = patch.Mobile
	}
	if patch.Email != "" {
		u.Email = patch.Email
	}
	if patch.Language != "" {
		u.Language = patch.Language
	}
	if patch.MPIN != "" {
		u.MPIN = patch.MPIN
	}
	return u
}

// NormalizeLanguage parses tag as a BCP 47 language tag and returns its
// canonical string form ("en", "hi", ...). Returns ErrInvalidLanguage when
// the tag cannot be parsed.
func NormalizeLanguage(tag string) (string, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return "", ErrInvalidLanguage
	}
	return t.String(), nil
}
