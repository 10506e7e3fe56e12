package httpapi

import "net/http"

func (s *Server) handleUploadURL(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity(r)
	var req struct {
		Scope string `json:"scope"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	key, url, err := s.media.GetUploadURL(r.Context(), userID, req.Scope)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "url": url})
}

func (s *Server) handleMediaURL(w http.ResponseWriter, r *http.Request) {
	url, err := s.media.GetDisplayURL(r.Context(), r.URL.Query().Get("key"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
