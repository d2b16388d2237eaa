package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"restaurant-storefront/internal/apperr"
	"restaurant-storefront/internal/catalog"
	"restaurant-storefront/internal/logger"
	"restaurant-storefront/internal/models"
	"restaurant-storefront/internal/order"
	"restaurant-storefront/internal/review"
	"restaurant-storefront/internal/session"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the storefront JSON API
type Handler struct {
	sessions      *session.Manager
	catalog       *catalog.Service
	reviews       *review.Service
	logger        *logger.Logger
	adminPasscode string
	pingers       map[string]Pinger
}

func NewHandler(sessions *session.Manager, cat *catalog.Service, reviews *review.Service, log *logger.Logger, adminPasscode string) *Handler {
	return &Handler{
		sessions:      sessions,
		catalog:       cat,
		reviews:       reviews,
		logger:        log,
		adminPasscode: adminPasscode,
		pingers:       make(map[string]Pinger),
	}
}

// WithHealthCheck adds a dependency to GET /health
func (h *Handler) WithHealthCheck(name string, p Pinger) *Handler {
	h.pingers[name] = p
	return h
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.pingers))
	healthy := true
	for name, p := range h.pingers {
		if err := p.Ping(ctx); err != nil {
			checks[name] = err.Error()
			healthy = false
			continue
		}
		checks[name] = "ok"
	}

	status := http.StatusOK
	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "storefront",
		"checks":    checks,
		"sessions":  h.sessions.Len(),
	}
	if !healthy {
		status = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
	}
	writeJSON(w, status, response)
}

// Menu handles GET /menu?q=&category=
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	snap := h.catalog.Snapshot()
	writeJSON(w, http.StatusOK, MenuResponse{
		Categories: snap.Categories,
		Items:      snap.Search(r.URL.Query().Get("q"), r.URL.Query().Get("category")),
	})
}

func (h *Handler) MenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalog.Item(chi.URLParam(r, "itemID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	summary, err := h.reviews.Summarize(r.Context(), item.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MenuItemResponse{Item: item, Reviews: summary})
}

func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalog.Item(chi.URLParam(r, "itemID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req ReviewRequest
	if !h.decode(w, r, &req) {
		return
	}
	rv, err := h.reviews.Add(r.Context(), item.ID, req.Author, req.Rating, req.Comment)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

func (h *Handler) Restaurant(w http.ResponseWriter, r *http.Request) {
	cfg := h.catalog.Config()
	branches := make([]string, 0, len(cfg.Branches))
	for _, b := range cfg.Branches {
		branches = append(branches, b.Name)
	}
	writeJSON(w, http.StatusOK, RestaurantResponse{
		IsOpen:        cfg.IsOpen,
		Branches:      branches,
		DeliveryTiers: cfg.DeliveryTiers,
	})
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.Create()
	h.logger.Info("session_created", "Session created", requestIDFrom(r.Context()), map[string]interface{}{
		"session_id": st.ID,
	})
	writeJSON(w, http.StatusCreated, st)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.sessions.Get(sessionID(r)))
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	h.sessions.Delete(sessionID(r))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req session.AddRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respond(w, r)(h.sessions.AddItem(sessionID(r), req))
}

func (h *Handler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	var req UpdateLineRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respond(w, r)(h.sessions.UpdateQuantity(sessionID(r), req.Key, req.Delta))
}

// RemoveLine handles DELETE /sessions/{id}/cart/lines?key=
func (h *Handler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.sessions.RemoveLine(sessionID(r), r.URL.Query().Get("key")))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.sessions.ClearCart(sessionID(r)))
}

func (h *Handler) SetOrderType(w http.ResponseWriter, r *http.Request) {
	var req OrderTypeRequest
	if !h.decode(w, r, &req) {
		return
	}
	t, err := models.ParseOrderType(req.OrderType)
	if err != nil {
		h.writeError(w, r, &order.ValidationError{Violation: order.InvalidType, Field: "order_type", Message: err.Error()})
		return
	}
	h.respond(w, r)(h.sessions.SetOrderType(sessionID(r), t))
}

func (h *Handler) SelectBranch(w http.ResponseWriter, r *http.Request) {
	var req BranchRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respond(w, r)(h.sessions.SelectBranch(sessionID(r), req.Branch))
}

func (h *Handler) SelectTier(w http.ResponseWriter, r *http.Request) {
	var req TierRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respond(w, r)(h.sessions.SelectTier(sessionID(r), req.TierID))
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req session.CustomerUpdate
	if !h.decode(w, r, &req) {
		return
	}
	h.respond(w, r)(h.sessions.UpdateCustomer(sessionID(r), req))
}

func (h *Handler) ShareLocation(w http.ResponseWriter, r *http.Request) {
	var req LocationRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respond(w, r)(h.sessions.ShareLocation(r.Context(), sessionID(r), req.service()))
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	receipt, err := h.sessions.Checkout(ctx, sessionID(r), requestIDFrom(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

func (h *Handler) LastOrder(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.sessions.LastOrder(sessionID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// ListOrders handles GET /admin/orders?limit=
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.writeError(w, r, &order.ValidationError{Field: "limit", Message: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	orders, err := h.sessions.Orders(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, OrdersResponse{Orders: orders, Count: len(orders)})
}

func (h *Handler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	snap, err := h.catalog.Refresh(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MenuResponse{Categories: snap.Categories, Items: snap.Items})
}

func (h *Handler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	var req PriceRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.apply(w, r, catalog.UpdatePrice{ItemID: chi.URLParam(r, "itemID"), Price: req.Price})
}

func (h *Handler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, catalog.ToggleAvailability{ItemID: chi.URLParam(r, "itemID")})
}

func (h *Handler) AddMenuItem(w http.ResponseWriter, r *http.Request) {
	var req models.MenuItem
	if !h.decode(w, r, &req) {
		return
	}
	h.apply(w, r, catalog.AddMenuItem{Item: req})
}

func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, catalog.DeleteMenuItem{ItemID: chi.URLParam(r, "itemID")})
}

func (h *Handler) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	var req models.RestaurantConfig
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.catalog.Apply(r.Context(), catalog.UpdateRestaurantConfig{Config: req}, requestIDFrom(r.Context())); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.catalog.Config())
}

func (h *Handler) Audit(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, AuditResponse{Entries: h.catalog.Audit()})
}

func (h *Handler) apply(w http.ResponseWriter, r *http.Request, cmd catalog.Command) {
	if err := h.catalog.Apply(r.Context(), cmd, requestIDFrom(r.Context())); err != nil {
		h.writeError(w, r, err)
		return
	}
	snap := h.catalog.Snapshot()
	writeJSON(w, http.StatusOK, MenuResponse{Categories: snap.Categories, Items: snap.Items})
}

// respond writes a session state or the error that replaced it
func (h *Handler) respond(w http.ResponseWriter, r *http.Request) func(session.State, error) {
	return func(st session.State, err error) {
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestIDFrom(r.Context()), err, nil)
		h.writeError(w, r, &order.ValidationError{Field: "body", Message: "invalid JSON format"})
		return false
	}
	return true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := requestIDFrom(r.Context())
	status := apperr.HTTPStatus(err)

	resp := ErrorResponse{
		Error:     apperr.Kind(err),
		Message:   err.Error(),
		RequestID: requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	var vErr *order.ValidationError
	if errors.As(err, &vErr) {
		resp.Field = vErr.Field
		resp.Violation = string(vErr.Violation)
		resp.Message = vErr.Message
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request_failed", "Request failed", requestID, err, map[string]interface{}{
			"path": r.URL.Path,
		})
		if status == http.StatusInternalServerError {
			resp.Message = "internal server error"
		}
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func sessionID(r *http.Request) string {
	return chi.URLParam(r, "sessionID")
}
