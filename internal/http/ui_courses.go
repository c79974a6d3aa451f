package httpx

import (
	"net/http"
	"strings"

	"github.com/openstax/rope/internal/domain/model"
)

// Courses lists every course build, filtered by ?email= and ?academic_year=.
// htmx filter requests get only the content block back.
func (h *UIHandlers) Courses(w http.ResponseWriter, r *http.Request) {
	sh, _ := viewer(r)
	q := r.URL.Query()
	filter := model.CourseBuildFilter{
		Email:        strings.TrimSpace(q.Get(fieldEmail)),
		AcademicYear: strings.TrimSpace(q.Get(fieldAcademicYear)),
	}

	b := h.newPage(w, r, PageMeta{PageTitle: "Course Builds", CurrentPage: PageCourses}).
		With("Filter", filter)

	status := http.StatusOK
	builds, err := h.Builds.ListAll(r.Context(), sh.Credentials(), filter)
	if err != nil {
		b.WithError(errMessage(err))
		status = formStatus(r, err)
	}
	b.With("Builds", builds)
	h.render(w, r, pageView{Data: b.Build(), Status: status})
}
