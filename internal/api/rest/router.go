package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	app "focus-cam/internal/application"
	"focus-cam/internal/container"
	"focus-cam/internal/infrastructure/bridge"
)

// maxPhotoSize ограничение на размер загружаемого снимка.
const maxPhotoSize = 16 << 20

type errorResponse struct {
	Error string `json:"error"`
}

type assessResponse struct {
	Focus        float64 `json:"focus"`
	Brightness   float64 `json:"brightness"`
	FocusOK      bool    `json:"focus_ok"`
	BrightnessOK bool    `json:"brightness_ok"`
	Ready        bool    `json:"ready"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
}

// Handler REST-интерфейс экрана съёмки и моста с хостом.
type Handler struct {
	c *container.Container
}

// NewRouter собирает маршруты.
func NewRouter(c *container.Container) *mux.Router {
	h := &Handler{c: c}
	r := mux.NewRouter()

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.HandleFunc("/status", h.status).Methods(http.MethodGet)
	r.HandleFunc("/capture", h.capture).Methods(http.MethodPost)
	r.HandleFunc("/retake", h.retake).Methods(http.MethodPost)
	r.HandleFunc("/upload", h.upload).Methods(http.MethodPost)
	r.HandleFunc("/assess", h.assess).Methods(http.MethodPost)
	r.HandleFunc("/captures", h.captures).Methods(http.MethodGet)
	r.HandleFunc("/bridge/messages", h.bridgeIn).Methods(http.MethodPost)
	r.HandleFunc("/bridge/messages", h.bridgeOut).Methods(http.MethodGet)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "OK\n")
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.c.CaptureService.Status())
}

func (h *Handler) capture(w http.ResponseWriter, r *http.Request) {
	if _, err := h.c.CaptureService.Capture(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.c.CaptureService.Status())
}

func (h *Handler) retake(w http.ResponseWriter, r *http.Request) {
	if err := h.c.CaptureService.Retake(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.c.CaptureService.Status())
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	res, err := h.c.CaptureService.Upload(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	code := http.StatusOK
	if !res.Success {
		code = http.StatusBadGateway
	}
	writeJSON(w, code, res)
}

func (h *Handler) assess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing file field"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	a, err := h.c.InspectionService.Assess(r.Context(), data)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, assessResponse{
		Focus:        a.Metrics.Focus,
		Brightness:   a.Metrics.Brightness,
		FocusOK:      a.Readiness.FocusOK,
		BrightnessOK: a.Readiness.BrightnessOK,
		Ready:        a.Readiness.Ready(),
		Width:        a.Width,
		Height:       a.Height,
	})
}

func (h *Handler) captures(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		limit = n
	}
	recs, err := h.c.CaptureService.History(r.Context(), limit)
	if err != nil {
		log.Printf("Error listing captures: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "history unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *Handler) bridgeIn(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	msg, err := bridge.Decode(data)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, h.c.BridgeService.Handle(r.Context(), msg))
}

func (h *Handler) bridgeOut(w http.ResponseWriter, r *http.Request) {
	msgs := h.c.BridgeService.Pending()
	if msgs == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// writeError переводит ошибки сервиса в HTTP-статусы.
func writeError(w http.ResponseWriter, err error) {
	var code int
	switch {
	case errors.Is(err, app.ErrNotReady),
		errors.Is(err, app.ErrUploadInProgress),
		errors.Is(err, app.ErrNothingCaptured),
		errors.Is(err, app.ErrNotStarted):
		code = http.StatusConflict
	case errors.Is(err, app.ErrNotConfigured):
		code = http.StatusServiceUnavailable
	default:
		log.Printf("Request error: %v", err)
		code = http.StatusBadGateway
	}
	writeJSON(w, code, errorResponse{Error: err.Error()})
}
