package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/tinoosan/finledger/internal/transfer"
)

const maxImportBytes = 10 << 20

func (s *Server) codec(w http.ResponseWriter, r *http.Request) (transfer.Codec, bool) {
	name := r.URL.Query().Get("format")
	if name == "" {
		name = s.deps.ExportFormat
	}
	c, err := transfer.CodecByName(name)
	if err != nil {
		badRequest(w, "format must be json or yaml")
		return nil, false
	}
	return c, true
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	c, ok := s.codec(w, r)
	if !ok {
		return
	}
	snap, err := s.deps.Exporter.Snapshot(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	data, err := c.Encode(snap)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", c.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="ledger.`+c.Name()+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type importResponse struct {
	transfer.Result
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
}

// importSnapshot applies the request body. On failure the entities created
// before it are reported alongside the error.
func (s *Server) importSnapshot(w http.ResponseWriter, r *http.Request) {
	c, ok := s.codec(w, r)
	if !ok {
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErr(w, http.StatusRequestEntityTooLarge, "import body exceeds 10 MiB", "too_large")
			return
		}
		badRequest(w, "read body: "+err.Error())
		return
	}
	snap, err := c.Decode(data)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	res, err := s.deps.Importer.Apply(r.Context(), snap)
	if err != nil {
		s.log.Warn("import stopped", "accounts", res.Accounts, "categories", res.Categories, "operations", res.Operations, "err", err)
		status, code := statusFor(err)
		toJSON(w, status, importResponse{Result: res, Error: err.Error(), Code: code})
		return
	}
	toJSON(w, http.StatusOK, importResponse{Result: res})
}
