package api

import (
	"fmt"
	"net/http"
	"time"

	"journal-transporter/transporter/internal/common"
	"journal-transporter/transporter/internal/constants"
	gormModels "journal-transporter/transporter/internal/models/gorm"
	"journal-transporter/transporter/internal/nested"
	"journal-transporter/transporter/internal/storage"
	"journal-transporter/transporter/internal/transport"
)

// FileContentHandler streams the stored bytes of an imported file. The file
// must belong to the article captured in the route.
func FileContentHandler(files *transport.Importer[gormModels.File, *gormModels.File], store *storage.LocalStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, ok := itemID(r)
		if !ok {
			common.RespondError(w, initTime, nil, constants.MsgNotFound, http.StatusNotFound)
			return
		}

		file, err := files.Get(r.Context(), nested.FromRequest(r), id)
		if err != nil {
			respondImportError(w, r, initTime, files.Name(), err)
			return
		}
		if file.Path == "" {
			common.RespondError(w, initTime, nil, constants.MsgNotFound, http.StatusNotFound)
			return
		}

		content, err := store.Open(file.Path)
		if err != nil {
			respondImportError(w, r, initTime, files.Name(), err)
			return
		}
		defer content.Close()

		modified := time.Time{}
		if file.DateModified != nil {
			modified = *file.DateModified
		}
		if file.MimeType != "" {
			w.Header().Set("Content-Type", file.MimeType)
		}
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.OriginalFilename))
		http.ServeContent(w, r, file.OriginalFilename, modified, content)
	}
}
