package transport

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/frahmantamala/absence-request/internal"
	"github.com/frahmantamala/absence-request/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &BaseHandler{Logger: lg}
}

// MessageResponse is the envelope for writes that return no entity.
type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}

func Success(message string) MessageResponse {
	return MessageResponse{Status: "success", Message: message}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response without field details
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.WriteJSON(w, status, internal.Response{Status: "error", Message: message})
}

// HandleServiceError maps AppErrors to their status; anything else is a hidden 500.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	appErr, ok := internal.IsAppError(err)
	if !ok {
		appErr = internal.NewStoreError(err)
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		h.Logger.Error("internal error", "code", appErr.Code, "error", appErr.Error())
	} else {
		h.Logger.Warn("request rejected", "code", appErr.Code, "detail", appErr.GetDetailedMessage())
	}

	status, body := appErr.ToHTTPResponse()
	h.WriteJSON(w, status, body)
}

type mismatchRecorder interface {
	RecordMismatches([]internal.ValidationError)
}

// DecodeJSON reads a JSON object into dst one field at a time. An empty body
// leaves dst zero so that field validation reports every missing field. A
// field holding the wrong JSON type is handed to dst when it embeds
// validation.Decoded, so the remaining rules still run.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return internal.ErrInvalidBody.
			WithDetails(internal.ValidationErrors{Errors: []internal.ValidationError{
				{Field: "body", Message: "リクエストボディの形式が不正です"},
			}}).
			WithCause(err)
	}

	mismatches := decodeFields(fields, dst)
	if len(mismatches) == 0 {
		return nil
	}
	if rec, ok := dst.(mismatchRecorder); ok {
		rec.RecordMismatches(mismatches)
		return nil
	}
	return internal.NewValidationFieldErrors(mismatches)
}

// decodeFields fills the json-tagged fields of the struct dst points to.
// Integer fields also accept a numeric string such as "3".
func decodeFields(fields map[string]json.RawMessage, dst interface{}) []internal.ValidationError {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return nil
	}
	st := rv.Elem()

	var mismatches []internal.ValidationError
	for i := 0; i < st.NumField(); i++ {
		sf := st.Type().Field(i)
		if sf.Anonymous || !sf.IsExported() {
			continue
		}
		name := jsonName(sf)
		raw, ok := fields[name]
		if name == "" || !ok {
			continue
		}

		field := st.Field(i)
		if err := json.Unmarshal(raw, field.Addr().Interface()); err == nil {
			continue
		}
		field.Set(reflect.Zero(field.Type()))
		if setNumericString(field, raw) {
			continue
		}
		mismatches = append(mismatches, internal.ValidationError{
			Field:   name,
			Message: name + "の形式が不正です",
		})
	}
	return mismatches
}

func jsonName(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return sf.Name
	}
	return name
}

func setNumericString(field reflect.Value, raw json.RawMessage) bool {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return false
	}

	target := field
	if field.Kind() == reflect.Ptr {
		target = reflect.New(field.Type().Elem()).Elem()
	}
	switch target.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
	default:
		return false
	}
	if target.OverflowInt(n) {
		return false
	}
	target.SetInt(n)

	if field.Kind() == reflect.Ptr {
		field.Set(target.Addr())
	} else {
		field.Set(target)
	}
	return true
}
