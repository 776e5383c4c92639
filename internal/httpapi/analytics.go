package httpapi

import "net/http"

// getAnalytics reports over the exclusive period ?from=&to=.
func (s *Server) getAnalytics(w http.ResponseWriter, r *http.Request) {
	from, to, _, ok := parsePeriod(w, r, true)
	if !ok {
		return
	}
	rep, err := s.deps.Analytics.Report(r.Context(), from, to)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, toAnalyticsResponse(rep))
}
