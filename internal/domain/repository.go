// Package domain contains the records the browser fetches and renders.
package domain

// Repository is a hosted code repository, identified solely by its name.
type Repository struct {
	Name string `json:"name"`
}

// Commit is a single entry of a repository's history.
// AuthorLogin is empty when GitHub could not link the commit to an account.
type Commit struct {
	AuthorLogin string `json:"author_login"`
	Message     string `json:"message"`
}
