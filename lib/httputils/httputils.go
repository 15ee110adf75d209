package httputils

import (
	"encoding/json"
	"net/http"

	"github.com/nvellon/hal"

	"quadrafund.io/quadra/lib/errors"
)

type HALResource interface {
	Resource() *hal.Resource
}

// IsEventStream checks request header accept is text/event-stream
func IsEventStream(r *http.Request) bool {
	if r.Header.Get("Accept") == "text/event-stream" {
		return true
	}
	return false
}

var ErrorsToStatus = map[uint]int{
	errors.AlreadyInitialized.Code:  http.StatusConflict,
	errors.NotInitialized.Code:      http.StatusConflict,
	errors.Unauthorized.Code:        http.StatusForbidden,
	errors.MalformedBallot.Code:     http.StatusBadRequest,
	errors.InvalidBallot.Code:       http.StatusBadRequest,
	errors.TransferFailed.Code:      http.StatusBadRequest,
	errors.BadRequestParameter.Code: http.StatusBadRequest,
	errors.InvalidAddress.Code:      http.StatusBadRequest,
	errors.NotFound.Code:            http.StatusNotFound,

	errors.StorageRecordDoesNotExist.Code: http.StatusNotFound,
}

func StatusCode(err error) int {
	if e, ok := err.(*errors.Error); ok {
		if status, ok := ErrorsToStatus[e.Code]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}

// WriteJSON writes the value v to the http response as json encoding
func WriteJSON(w http.ResponseWriter, code int, v interface{}) error {
	if h, ok := v.(HALResource); ok {
		w.Header().Set("Content-Type", "application/hal+json")
		v = h.Resource()
	} else {
		w.Header().Set("Content-Type", "application/json")
	}

	w.WriteHeader(code)

	bs, err := json.Marshal(v)
	if err != nil {
		return err
	}

	if _, err := w.Write(bs); err != nil {
		return err
	}

	return nil
}

func WriteJSONError(w http.ResponseWriter, err error) {
	WriteJSON(w, StatusCode(err), err)
}
