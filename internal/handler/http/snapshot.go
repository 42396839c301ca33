package http

import (
	"net/http"

	"github.com/MKhiriev/go-dash-sync/internal/logger"
	"github.com/MKhiriev/go-dash-sync/internal/utils"
	"github.com/MKhiriev/go-dash-sync/models"
)

func (h *Handler) getSnapshot(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	owner, _ := utils.GetOwnerFromContext(r.Context())

	blob, err := h.services.SnapshotService.GetSnapshot(r.Context(), owner)
	if err != nil {
		log.Err(err).Str("owner", owner).Msg("snapshot read failed")
		writeServiceError(w, err)
		return
	}

	n, _ := utils.WriteJSON(w, blob, http.StatusOK)
	h.metrics.snapshotRead(n)
}

// putSnapshot replaces the caller's blob as a whole.
func (h *Handler) putSnapshot(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	owner, _ := utils.GetOwnerFromContext(r.Context())

	var blob models.CloudBlob
	if !decodeBody(w, r, &blob, snapshotBodyLimit) {
		log.Warn().Str("owner", owner).Msg("invalid snapshot body")
		return
	}

	if err := h.services.SnapshotService.PutSnapshot(r.Context(), owner, blob); err != nil {
		log.Err(err).Str("owner", owner).Msg("snapshot write failed")
		writeServiceError(w, err)
		return
	}

	h.metrics.snapshotWritten(len(blob.Projects))
	w.WriteHeader(http.StatusNoContent)
}
