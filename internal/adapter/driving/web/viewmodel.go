package web

import (
	"time"

	vm "github.com/credpanel/credpanel/internal/adapter/driving/web/viewmodel"
	"github.com/credpanel/credpanel/internal/application"
	"github.com/credpanel/credpanel/internal/domain/model"
	"github.com/credpanel/credpanel/internal/queryparams"
)

const listPath = "/app/credentials"

// toCredentialRowViewModel converts a single domain Credential to a list row.
func toCredentialRowViewModel(c model.Credential, selected bool) vm.CredentialRowViewModel {
	modified := ""
	if !c.ModifiedAt.IsZero() {
		modified = c.ModifiedAt.UTC().Format(time.RFC3339)
	}

	return vm.CredentialRowViewModel{
		ID:          c.ID,
		Name:        c.Name,
		Kind:        c.Kind,
		Description: c.Description,
		NotesHTML:   RenderMarkdown(c.Notes),
		ModifiedAt:  modified,
		Selected:    selected,
	}
}

// toPaginationViewModel derives the pagination footer from the query and the
// loaded view. Prev/next URLs are full list paths so the footer works as
// plain links.
func toPaginationViewModel(cfg queryparams.Config, q model.Query, loaded, total int) vm.PaginationViewModel {
	start, end := 0, 0
	if loaded > 0 {
		start = (q.Page-1)*q.PageSize + 1
		end = start + loaded - 1
	}

	p := vm.PaginationViewModel{
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalCount: total,
		StartIndex: start,
		EndIndex:   end,
		HasPrev:    q.Page > 1,
		HasNext:    q.Page*q.PageSize < total,
	}

	if p.HasPrev {
		prev := q.Page - 1
		p.PrevURL = listURL(cfg, queryparams.Replace(q, queryparams.Overrides{Page: &prev}))
	}
	if p.HasNext {
		next := q.Page + 1
		p.NextURL = listURL(cfg, queryparams.Replace(q, queryparams.Overrides{Page: &next}))
	}

	return p
}

// toListViewModel assembles the full page model for the credential list.
// view may be nil (nothing loaded); contentErr renders in place of the list
// when non-empty; deleteErr opens the error modal when non-empty.
func toListViewModel(
	cfg queryparams.Config,
	q model.Query,
	view *model.CredentialView,
	sel *application.Selection,
	busy bool,
	csrf string,
	contentErr string,
	deleteErr string,
) vm.CredentialListViewModel {
	out := vm.CredentialListViewModel{
		Rows:         []vm.CredentialRowViewModel{},
		ContentError: contentErr,
		ErrorModal:   vm.ErrorModalViewModel{Open: deleteErr != "", Detail: deleteErr},
		CSRFToken:    csrf,
		ActionQuery:  queryparams.EncodeNonDefault(cfg, q),
	}

	var creds []model.Credential
	if view != nil {
		creds = view.Credentials
		out.Count = view.Count
		out.Toolbar.CanAdd = view.Actions.CanCreate()
	}

	for _, c := range creds {
		out.Rows = append(out.Rows, toCredentialRowViewModel(c, sel.Contains(c.ID)))
	}

	out.Pagination = toPaginationViewModel(cfg, q, len(creds), out.Count)
	out.Toolbar.AllSelected = sel.AllSelected(creds)
	out.Toolbar.SelectedCount = sel.Len()
	out.Toolbar.Disabled = busy

	return out
}

// listURL builds the list path for the given query, omitting default fields.
func listURL(cfg queryparams.Config, q model.Query) string {
	if enc := queryparams.EncodeNonDefault(cfg, q); enc != "" {
		return listPath + "?" + enc
	}
	return listPath
}
