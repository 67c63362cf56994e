package xhttp

import (
	"net/http"

	go_json "github.com/goccy/go-json"
)

func Error(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}

// WriteJSON encodes data before committing the status so an unencodable body
// becomes a 500 rather than a truncated response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	body, err := go_json.Marshal(data)
	if err != nil {
		Error(w, http.StatusInternalServerError)
		return
	}
	SetHeaderContentTypeApplicationJSON(w)
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func WriteOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, data)
}
