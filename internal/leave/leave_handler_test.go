package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"employee-portal/internal/balance"
	"employee-portal/internal/leave"
	leaveerrors "employee-portal/internal/leave/errors"
	"employee-portal/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveService struct {
	CreateFn     func(ctx context.Context, callerID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	ListFn       func(ctx context.Context, callerID string, scope leave.Scope) ([]leave.LeaveResponse, error)
	GetByIDFn    func(ctx context.Context, callerID, id string) (leave.LeaveResponse, error)
	UpdateFn     func(ctx context.Context, callerID, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error)
	DeleteFn     func(ctx context.Context, callerID, id string) error
	TransitionFn func(ctx context.Context, callerID, id string, action rbac.Action, reason string) (leave.LeaveResponse, error)
}

func (f *fakeLeaveService) Create(ctx context.Context, callerID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.CreateFn(ctx, callerID, req)
}
func (f *fakeLeaveService) List(ctx context.Context, callerID string, scope leave.Scope) ([]leave.LeaveResponse, error) {
	return f.ListFn(ctx, callerID, scope)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, callerID, id string) (leave.LeaveResponse, error) {
	return f.GetByIDFn(ctx, callerID, id)
}
func (f *fakeLeaveService) Update(ctx context.Context, callerID, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	return f.UpdateFn(ctx, callerID, id, req)
}
func (f *fakeLeaveService) Delete(ctx context.Context, callerID, id string) error {
	return f.DeleteFn(ctx, callerID, id)
}
func (f *fakeLeaveService) Transition(ctx context.Context, callerID, id string, action rbac.Action, reason string) (leave.LeaveResponse, error) {
	return f.TransitionFn(ctx, callerID, id, action, reason)
}

const testCallerID = "7b0f7f5e-4a57-4c4b-9c38-1d1f4f6f2a10"

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("employee_id", testCallerID)
		c.Next()
	})
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestLeaveHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			CreateFn: func(ctx context.Context, callerID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, testCallerID, callerID)
				assert.Equal(t, "paid", req.LeaveType)
				return leave.LeaveResponse{ID: "l-1", Status: "pending"}, nil
			},
		}
		r := setupRouter()
		r.POST("/requests", leave.NewHandler(svc).Create)

		w := doJSON(r, http.MethodPost, "/requests",
			`{"leave_type":"paid","start_date":"2026-03-02","end_date":"2026-03-03","reason":"trip","employee_id":"someone-else"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"pending"`)
	})

	t.Run("negative unknown leave type", func(t *testing.T) {
		svc := &fakeLeaveService{
			CreateFn: func(ctx context.Context, callerID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				t.Fatal("service must not be called")
				return leave.LeaveResponse{}, nil
			},
		}
		r := setupRouter()
		r.POST("/requests", leave.NewHandler(svc).Create)

		w := doJSON(r, http.MethodPost, "/requests", `{"leave_type":"vacation","start_date":"2026-03-02","end_date":"2026-03-03"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_INPUT", decode(t, w).Error.Code)
	})
}

func TestLeaveHandler_List(t *testing.T) {
	svc := &fakeLeaveService{
		ListFn: func(ctx context.Context, callerID string, scope leave.Scope) ([]leave.LeaveResponse, error) {
			assert.Equal(t, leave.ScopePendingApproval, scope)
			return []leave.LeaveResponse{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
		},
	}
	r := setupRouter()
	r.GET("/requests", leave.NewHandler(svc).List)

	w := doJSON(r, http.MethodGet, "/requests?scope=pending_approval&page=2&page_size=2", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var items []leave.LeaveResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "c", items[0].ID)

	t.Run("negative oversized page is empty", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/requests?scope=pending_approval&page=9223372036854775807", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var items []leave.LeaveResponse
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &items))
		assert.Empty(t, items)
	})
}

func TestLeaveHandler_GetByID(t *testing.T) {
	svc := &fakeLeaveService{
		GetByIDFn: func(ctx context.Context, callerID, id string) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		},
	}
	r := setupRouter()
	r.GET("/requests/:id", leave.NewHandler(svc).GetByID)

	w := doJSON(r, http.MethodGet, "/requests/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, w).Error.Code)
}

func TestLeaveHandler_Update(t *testing.T) {
	t.Run("success status in body is ignored", func(t *testing.T) {
		svc := &fakeLeaveService{
			UpdateFn: func(ctx context.Context, callerID, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
				require.NotNil(t, req.Reason)
				assert.Equal(t, "new reason", *req.Reason)
				assert.Nil(t, req.StartDate)
				return leave.LeaveResponse{ID: id, Status: "pending", Reason: *req.Reason}, nil
			},
		}
		r := setupRouter()
		r.PATCH("/requests/:id", leave.NewHandler(svc).Update)

		w := doJSON(r, http.MethodPatch, "/requests/l-1", `{"reason":"new reason","status":"approved"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"pending"`)
	})

	t.Run("negative not editable", func(t *testing.T) {
		svc := &fakeLeaveService{
			UpdateFn: func(ctx context.Context, callerID, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrNotEditable
			},
		}
		r := setupRouter()
		r.PATCH("/requests/:id", leave.NewHandler(svc).Update)

		w := doJSON(r, http.MethodPatch, "/requests/l-1", `{"reason":"x"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_STATE", decode(t, w).Error.Code)
	})
}

func TestLeaveHandler_Delete(t *testing.T) {
	svc := &fakeLeaveService{
		DeleteFn: func(ctx context.Context, callerID, id string) error {
			assert.Equal(t, "l-1", id)
			return nil
		},
	}
	r := setupRouter()
	r.DELETE("/requests/:id", leave.NewHandler(svc).Delete)

	w := doJSON(r, http.MethodDelete, "/requests/l-1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":true`)
}

func TestLeaveHandler_Transition(t *testing.T) {
	t.Run("success approve without body", func(t *testing.T) {
		svc := &fakeLeaveService{
			TransitionFn: func(ctx context.Context, callerID, id string, action rbac.Action, reason string) (leave.LeaveResponse, error) {
				assert.Equal(t, rbac.ActionApproveManager, action)
				assert.Empty(t, reason)
				return leave.LeaveResponse{ID: id, Status: "manager_approved"}, nil
			},
		}
		r := setupRouter()
		r.POST("/requests/:id/approve_manager", leave.NewHandler(svc).Transition(rbac.ActionApproveManager))

		w := doJSON(r, http.MethodPost, "/requests/l-1/approve_manager", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "manager_approved")
	})

	t.Run("success reject passes reason", func(t *testing.T) {
		svc := &fakeLeaveService{
			TransitionFn: func(ctx context.Context, callerID, id string, action rbac.Action, reason string) (leave.LeaveResponse, error) {
				assert.Equal(t, "short staffed", reason)
				return leave.LeaveResponse{ID: id, Status: "rejected"}, nil
			},
		}
		r := setupRouter()
		r.POST("/requests/:id/reject_hr", leave.NewHandler(svc).Transition(rbac.ActionRejectHR))

		w := doJSON(r, http.MethodPost, "/requests/l-1/reject_hr", `{"reason":"short staffed"}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative insufficient balance carries amounts", func(t *testing.T) {
		svc := &fakeLeaveService{
			TransitionFn: func(ctx context.Context, callerID, id string, action rbac.Action, reason string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, &balance.InsufficientBalanceError{
					LeaveType: "paid",
					Available: decimal.NewFromInt(1),
					Required:  decimal.NewFromInt(2),
				}
			},
		}
		r := setupRouter()
		r.POST("/requests/:id/approve_hr", leave.NewHandler(svc).Transition(rbac.ActionApproveHR))

		w := doJSON(r, http.MethodPost, "/requests/l-1/approve_hr", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decode(t, w)
		assert.Equal(t, "INSUFFICIENT_BALANCE", env.Error.Code)

		var details map[string]string
		require.NoError(t, json.Unmarshal(env.Error.Details, &details))
		assert.Equal(t, "1.00", details["available"])
		assert.Equal(t, "2.00", details["required"])
	})

	t.Run("negative invalid transition", func(t *testing.T) {
		svc := &fakeLeaveService{
			TransitionFn: func(ctx context.Context, callerID, id string, action rbac.Action, reason string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInvalidTransition
			},
		}
		r := setupRouter()
		r.POST("/requests/:id/cancel", leave.NewHandler(svc).Transition(rbac.ActionCancel))

		w := doJSON(r, http.MethodPost, "/requests/l-1/cancel", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_STATE", decode(t, w).Error.Code)
	})

	t.Run("negative forbidden", func(t *testing.T) {
		svc := &fakeLeaveService{
			TransitionFn: func(ctx context.Context, callerID, id string, action rbac.Action, reason string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrForbidden
			},
		}
		r := setupRouter()
		r.POST("/requests/:id/approve_hr", leave.NewHandler(svc).Transition(rbac.ActionApproveHR))

		w := doJSON(r, http.MethodPost, "/requests/l-1/approve_hr", "")

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
