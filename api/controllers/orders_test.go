package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/classcooks/classcooks-backend/api/middleware"
	cartsvc "github.com/classcooks/classcooks-backend/internal/cart"
	internalorders "github.com/classcooks/classcooks-backend/internal/orders"
	"github.com/classcooks/classcooks-backend/pkg/db/models"
	"github.com/classcooks/classcooks-backend/pkg/enums"
	pkgerrors "github.com/classcooks/classcooks-backend/pkg/errors"
)

type stubCartService struct {
	lines    []cartsvc.Line
	getErr   error
	clearErr error
	cleared  bool
}

func (s *stubCartService) Get(ctx context.Context, userID uuid.UUID) ([]cartsvc.Line, error) {
	return s.lines, s.getErr
}

func (s *stubCartService) AddLine(ctx context.Context, userID uuid.UUID, line cartsvc.Line) ([]cartsvc.Line, error) {
	return s.lines, nil
}

func (s *stubCartService) RemoveLine(ctx context.Context, userID, recipeID, classID uuid.UUID) ([]cartsvc.Line, error) {
	return s.lines, nil
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, userID, recipeID, classID uuid.UUID, quantity int) ([]cartsvc.Line, error) {
	return s.lines, nil
}

func (s *stubCartService) UpdateNotes(ctx context.Context, userID, recipeID, classID uuid.UUID, notes string) ([]cartsvc.Line, error) {
	return s.lines, nil
}

func (s *stubCartService) UpdateDate(ctx context.Context, userID, recipeID, classID uuid.UUID, date *time.Time) ([]cartsvc.Line, error) {
	return s.lines, nil
}

func (s *stubCartService) UpdateClass(ctx context.Context, userID, recipeID, classID, newClassID uuid.UUID, newClassName string) ([]cartsvc.Line, error) {
	return s.lines, nil
}

func (s *stubCartService) Clear(ctx context.Context, userID uuid.UUID) error {
	s.cleared = true
	return s.clearErr
}

type stubOrdersService struct {
	submitID      uuid.UUID
	submitErr     error
	submittedFor  internalorders.Identity
	detail        *internalorders.OrderDetail
	detailErr     error
	transitionErr error
}

func (s *stubOrdersService) Submit(ctx context.Context, actor internalorders.Identity, lines []cartsvc.Line) (uuid.UUID, error) {
	s.submittedFor = actor
	return s.submitID, s.submitErr
}

func (s *stubOrdersService) TransitionOrder(ctx context.Context, orderID uuid.UUID, newStatus enums.OrderStatus) error {
	return s.transitionErr
}

func (s *stubOrdersService) TransitionItem(ctx context.Context, input internalorders.TransitionItemInput) error {
	return s.transitionErr
}

func (s *stubOrdersService) MarkComplete(ctx context.Context, orderID uuid.UUID) error {
	return s.transitionErr
}

func (s *stubOrdersService) GetOrder(ctx context.Context, orderID uuid.UUID) (*internalorders.OrderDetail, error) {
	return s.detail, s.detailErr
}

func (s *stubOrdersService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return nil, nil
}

func (s *stubOrdersService) GetClassOrder(ctx context.Context, classID uuid.UUID) (*models.ClassOrder, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no orders for class")
}

func identityContext(ctx context.Context, userID, schoolID uuid.UUID) context.Context {
	ctx = middleware.WithUserID(ctx, userID)
	return middleware.WithSchoolID(ctx, schoolID)
}

func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestOrderSubmitClearsCart(t *testing.T) {
	userID := uuid.New()
	schoolID := uuid.New()
	cart := &stubCartService{lines: []cartsvc.Line{{
		RecipeID:   uuid.New(),
		RecipeName: "Banana Bread",
		ClassID:    uuid.New(),
		ClassName:  "Class 3B",
		Quantity:   2,
	}}}
	orders := &stubOrdersService{submitID: uuid.New()}
	handler := OrderSubmit(orders, cart, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil)
	req = req.WithContext(identityContext(req.Context(), userID, schoolID))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if !cart.cleared {
		t.Fatal("expected cart cleared after submit")
	}
	if orders.submittedFor.UserID != userID || orders.submittedFor.SchoolID != schoolID {
		t.Fatalf("unexpected identity: %+v", orders.submittedFor)
	}

	var envelope struct {
		Data submitResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.OrderID != orders.submitID.String() {
		t.Fatalf("unexpected order id: %s", envelope.Data.OrderID)
	}
}

func TestOrderSubmitEmptyCart(t *testing.T) {
	handler := OrderSubmit(&stubOrdersService{}, &stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil)
	req = req.WithContext(identityContext(req.Context(), uuid.New(), uuid.New()))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOrderSubmitKeepsCartOnFailure(t *testing.T) {
	cart := &stubCartService{lines: []cartsvc.Line{{RecipeID: uuid.New(), ClassID: uuid.New(), Quantity: 1}}}
	orders := &stubOrdersService{submitErr: pkgerrors.New(pkgerrors.CodeDependency, "persist order header")}
	handler := OrderSubmit(orders, cart, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil)
	req = req.WithContext(identityContext(req.Context(), uuid.New(), uuid.New()))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
	if cart.cleared {
		t.Fatal("cart must survive a failed submit")
	}
}

func TestOrderGetPartialFetchReturns206(t *testing.T) {
	orderID := uuid.New()
	detail := &internalorders.OrderDetail{Order: models.Order{ID: orderID, Status: enums.OrderStatusPending}}
	orders := &stubOrdersService{
		detail:    detail,
		detailErr: pkgerrors.New(pkgerrors.CodePartialFetch, "order items unavailable"),
	}
	handler := OrderGet(orders, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders/"+orderID.String(), nil)
	req = withURLParams(req, map[string]string{"orderId": orderID.String()})

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusPartialContent {
		t.Fatalf("expected 206 got %d", resp.Code)
	}

	var envelope struct {
		Data    internalorders.OrderDetail `json:"data"`
		Warning struct {
			Code string `json:"code"`
		} `json:"warning"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Order.ID != orderID {
		t.Fatalf("unexpected order id: %s", envelope.Data.Order.ID)
	}
	if envelope.Warning.Code != string(pkgerrors.CodePartialFetch) {
		t.Fatalf("unexpected warning code: %s", envelope.Warning.Code)
	}
}

func TestOrderGetInvalidID(t *testing.T) {
	handler := OrderGet(&stubOrdersService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders/not-a-uuid", nil)
	req = withURLParams(req, map[string]string{"orderId": "not-a-uuid"})

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminOrderTransitionRejectsUnknownStatus(t *testing.T) {
	orderID := uuid.New()
	handler := AdminOrderTransition(&stubOrdersService{}, nil)

	body := bytes.NewBufferString(`{"status":"packed"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/orders/"+orderID.String()+"/status", body)
	req = withURLParams(req, map[string]string{"orderId": orderID.String()})

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminOrderTransitionStateConflict(t *testing.T) {
	orderID := uuid.New()
	orders := &stubOrdersService{transitionErr: pkgerrors.New(pkgerrors.CodeStateConflict, "cannot move order from dispatched to processing")}
	handler := AdminOrderTransition(orders, nil)

	body := bytes.NewBufferString(`{"status":"processing"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/orders/"+orderID.String()+"/status", body)
	req = withURLParams(req, map[string]string{"orderId": orderID.String()})

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}
