package app

import (
	"net/http"

	"github.com/dvnc0/gimli/mux"
)

// HomeController serves the landing page.
type HomeController struct {
	Name string
}

// Index greets the caller.
func (c HomeController) Index() string {
	return c.Name + " is running\n"
}

// LoginController serves the page unauthenticated API calls are sent to.
type LoginController struct{}

// Show answers with a sign-in hint.
func (LoginController) Show() *mux.Response {
	return mux.Text(http.StatusUnauthorized, "sign in with the X-Api-Token header\n")
}

// ShowPost holds the captures of the post lookup by id.
type ShowPost struct {
	ID int `route:"id"`
}

// ShowPostBySlug holds the captures of the post lookup by slug.
type ShowPostBySlug struct {
	Slug string `route:"slug"`
}

// PostController serves the posts API.
type PostController struct{}

// Index lists every post.
func (PostController) Index(store PostStore) ([]Post, error) {
	return store.List(), nil
}

// Show returns the post with the captured id.
func (PostController) Show(store PostStore, in ShowPost) (*mux.Response, error) {
	p, ok := store.Find(in.ID)
	if !ok {
		return mux.Text(http.StatusNotFound, mux.BodyNotFound), nil
	}
	return mux.JSON(http.StatusOK, p)
}

// BySlug returns the post with the captured slug.
func (PostController) BySlug(store PostStore, in ShowPostBySlug) (*mux.Response, error) {
	p, ok := store.FindBySlug(in.Slug)
	if !ok {
		return mux.Text(http.StatusNotFound, mux.BodyNotFound), nil
	}
	return mux.JSON(http.StatusOK, p)
}

// Delete removes the post with the captured id. The id is bound
// positionally.
func (PostController) Delete(store PostStore, id int) *mux.Response {
	if !store.Delete(id) {
		return mux.Text(http.StatusNotFound, mux.BodyNotFound)
	}
	return &mux.Response{Status: http.StatusNoContent}
}
