package analytics

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	apperrors "github.com/Adithya-Monish-Kumar-K/jobsearch/pkg/errors"
)

const maxTop = 100

var knownOperations = map[Operation]bool{OpSearch: true, OpFilter: true, OpMatch: true, OpSuggest: true}

type Handler struct {
	aggregator *Aggregator
	logger     *slog.Logger
}

func NewHandler(aggregator *Aggregator) *Handler {
	return &Handler{
		aggregator: aggregator,
		logger:     slog.Default().With("component", "analytics-handler"),
	}
}

// Stats serves aggregated query analytics. Optional parameters: top (1-100)
// limits the query lists, operation restricts them to one operation.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	top := DefaultTop
	if raw := q.Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxTop {
			apperrors.Write(w, apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest, "top must be between 1 and %d", maxTop))
			return
		}
		top = n
	}
	op := Operation(q.Get("operation"))
	if op != "" && !knownOperations[op] {
		apperrors.Write(w, apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest, "unknown operation %q", op))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.aggregator.StatsFor(top, op)); err != nil {
		h.logger.Error("failed to write analytics response", "error", err)
	}
}
