package cli

import (
	"fmt"
	"io"
	"strings"

	"weblog/app/models"
	"weblog/pagination"
)

// renderPost writes one post as a card. ownID marks posts authored by
// the current identity; pass -1 when not logged in.
func renderPost(w io.Writer, post *models.Post, ownID int) {
	marker := ""
	if post.AuthorID == ownID {
		marker = " (you)"
	}
	fmt.Fprintf(w, "#%d %s%s\n", post.ID, post.Title, marker)
	fmt.Fprintf(w, "  author %d | created %s | updated %s\n",
		post.AuthorID,
		post.CreatedAt.Format("2006-01-02 15:04"),
		post.UpdatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "  %s\n", post.Content)
}

// renderPage writes a fetched page with navigation markers.
func renderPage(w io.Writer, page *pagination.Page, ownID int) {
	if len(page.Items) == 0 {
		fmt.Fprintln(w, "No posts yet.")
		return
	}

	fmt.Fprintf(w, "Page %d\n\n", page.Index+1)
	for _, post := range page.Items {
		renderPost(w, post, ownID)
		fmt.Fprintln(w, strings.Repeat("-", 40))
	}

	nav := []string{}
	if page.HasPrev {
		nav = append(nav, fmt.Sprintf("prev: --page %d", page.Index))
	}
	if page.HasNext {
		nav = append(nav, fmt.Sprintf("next: --page %d", page.Index+2))
	}
	if len(nav) > 0 {
		fmt.Fprintln(w, strings.Join(nav, " | "))
	}
}
