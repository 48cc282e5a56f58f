// Package view holds the templ components: the entry document served for
// non-API routes and the task list fragment pushed over SSE.
//
// view_templ.go is generated from view.templ by `templ generate`.
package view
