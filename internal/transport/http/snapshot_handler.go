package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"horizonx-probe/internal/core"
	"horizonx-probe/internal/logger"
)

// Sampler produces one fresh snapshot per call.
type Sampler interface {
	Collect(ctx context.Context, v core.Verbosity) (*core.Snapshot, error)
}

// Observer is told about every snapshot the handler collects.
type Observer interface {
	Observe(snap *core.Snapshot, took time.Duration)
	Fail()
}

type SnapshotHandler struct {
	sampler   Sampler
	verbosity core.Verbosity
	observer  Observer
	writer    *JSONWriter
	log       logger.Logger
}

func NewSnapshotHandler(sampler Sampler, v core.Verbosity, observer Observer, log logger.Logger) *SnapshotHandler {
	return &SnapshotHandler{
		sampler:   sampler,
		verbosity: v,
		observer:  observer,
		writer:    NewJSONWriter(log),
		log:       log,
	}
}

// Show collects at the configured level unless ?run_level= asks for
// another one.
func (h *SnapshotHandler) Show(w http.ResponseWriter, r *http.Request) {
	v := h.verbosity
	if lvl := r.URL.Query().Get("run_level"); lvl != "" {
		parsed, err := core.ParseRunLevel(lvl)
		if err != nil {
			h.writer.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		v = parsed
	}

	start := time.Now()
	snap, err := h.sampler.Collect(r.Context(), v)
	if err != nil {
		if h.observer != nil {
			h.observer.Fail()
		}
		if errors.Is(err, context.Canceled) {
			h.log.Debug("http: snapshot request cancelled")
			return
		}
		h.log.Error("http: snapshot failed", "error", err)
		h.writer.Error(w, http.StatusInternalServerError, "snapshot collection failed")
		return
	}
	if h.observer != nil {
		h.observer.Observe(snap, time.Since(start))
	}

	h.writer.Write(w, http.StatusOK, &Response{Data: snap})
}
