package model

import (
	"encoding/json"
	"net/http"
)

// Actions maps HTTP verbs the controller permits on the credential
// collection to their (opaque) schema metadata, as reported by the
// controller's OPTIONS endpoint.
type Actions map[string]json.RawMessage

// CanCreate reports whether the controller permits creating credentials,
// i.e. whether the actions mapping contains a POST entry.
func (a Actions) CanCreate() bool {
	_, ok := a[http.MethodPost]
	return ok
}
