package httpx

import "net/http"

// About renders the about page.
func (h *UIHandlers) About(w http.ResponseWriter, r *http.Request) {
	b := h.newPage(w, r, PageMeta{PageTitle: "About", CurrentPage: PageAbout})
	h.render(w, r, pageView{Data: b.Build()})
}
