package driven

import (
	"context"
	"errors"

	"github.com/credpanel/credpanel/internal/domain/model"
)

// ErrCredentialNotFound is returned by DeleteCredential when the controller
// reports that the id does not exist (already deleted or never present).
var ErrCredentialNotFound = errors.New("credential not found")

// CredentialAPI defines the driven port for the controller's credential
// REST API. The console only reads and deletes; creation and editing happen
// in the controller's own UI.
type CredentialAPI interface {
	// ListCredentials fetches one page of credentials matching the query
	// descriptor, plus the total match count.
	ListCredentials(ctx context.Context, q model.Query) (*model.CredentialPage, error)

	// CredentialActions returns the verbs the controller permits on the
	// credential collection (OPTIONS-style call).
	CredentialActions(ctx context.Context) (model.Actions, error)

	// DeleteCredential removes a single credential by id. There is no batch
	// endpoint; bulk deletion is the caller's concern.
	DeleteCredential(ctx context.Context, id string) error
}
