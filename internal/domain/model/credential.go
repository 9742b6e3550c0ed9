// Package model contains the domain types shared by the console's
// application services and adapters.
package model

import (
	"encoding/json"
	"time"
)

// Credential is a single credential record as reported by the controller.
// The console treats it as mostly opaque: only ID is load-bearing (stable,
// unique); everything else is passed through to the list renderer.
type Credential struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
	ModifiedAt  time.Time       `json:"modified_at"`
	Raw         json.RawMessage `json:"-"` // full controller payload, untouched
}

// CredentialPage is one page of credentials plus the total match count.
type CredentialPage struct {
	Credentials []Credential
	Count       int
}

// CredentialView is the merged, renderable snapshot of one list fetch:
// the page contents plus the verbs the controller permits on the
// credential collection. It is replaced wholesale on every successful
// fetch and never partially mutated.
type CredentialView struct {
	Credentials []Credential
	Count       int
	Actions     Actions
}

// CredentialByID returns the loaded credential with the given id, or nil.
func (v *CredentialView) CredentialByID(id string) *Credential {
	for i := range v.Credentials {
		if v.Credentials[i].ID == id {
			return &v.Credentials[i]
		}
	}
	return nil
}
