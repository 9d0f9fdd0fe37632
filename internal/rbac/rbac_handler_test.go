package rbac

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =========================================
// Fake Service
// =========================================

type fakeService struct {
	capabilitiesFn func(role Role) []Capability
}

func (f *fakeService) Can(role Role, action Action, rel Relationship) bool { return false }

func (f *fakeService) Capabilities(role Role) []Capability {
	return f.capabilitiesFn(role)
}

// =========================================
// TEST: Handler Capabilities
// =========================================

func TestHandler_Capabilities(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		handler := NewHandler(&fakeService{capabilitiesFn: func(role Role) []Capability {
			assert.Equal(t, RoleManager, role)
			return []Capability{{Action: ActionApproveManager, Relationships: []Relationship{RelManagerOf}}}
		}})

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/rbac/capabilities", nil)
		c.Set("role", "manager")

		handler.Capabilities(c)

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Ok   bool                 `json:"ok"`
			Data CapabilitiesResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Ok)
		assert.Equal(t, RoleManager, body.Data.Role)
		assert.Len(t, body.Data.Capabilities, 1)
	})

	t.Run("negative unknown role yields empty set", func(t *testing.T) {
		handler := NewHandler(&fakeService{capabilitiesFn: func(role Role) []Capability {
			t.Fatal("service must not be called")
			return nil
		}})

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/rbac/capabilities", nil)
		c.Set("role", "contractor")

		handler.Capabilities(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"capabilities":[]`)
	})
}
