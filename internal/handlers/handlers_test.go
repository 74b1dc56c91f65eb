package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/mfg-tool-dashboard/internal/constants"
	"github.com/yukikurage/mfg-tool-dashboard/internal/importer"
	"github.com/yukikurage/mfg-tool-dashboard/internal/models"
	"github.com/yukikurage/mfg-tool-dashboard/internal/repository"
	"github.com/yukikurage/mfg-tool-dashboard/internal/services"
	"github.com/yukikurage/mfg-tool-dashboard/internal/testutil"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type handlerTestEnv struct {
	db          *gorm.DB
	authService *services.AuthService
	toolService *services.ToolService
	userService *services.UserService
	importer    *importer.Importer
}

func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenTestDB(t)
	userRepo := repository.NewUserRepository(db)
	toolRepo := repository.NewToolRepository(db)
	authService := services.NewAuthService(userRepo, bcrypt.MinCost)

	return handlerTestEnv{
		db:          db,
		authService: authService,
		toolService: services.NewToolService(toolRepo),
		userService: services.NewUserService(userRepo, toolRepo, authService),
		importer:    importer.New(toolRepo, false),
	}
}

// newTestRouter returns an engine with a cookie session store. A non-nil
// actor is placed in the context as the authenticated user.
func newTestRouter(actor *models.User) *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	if actor != nil {
		r.Use(func(c *gin.Context) {
			c.Set(constants.ContextKeyUserID, actor.ID)
			c.Set(constants.ContextKeyUser, actor)
			c.Next()
		})
	}
	return r
}

func performJSON(t *testing.T, r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader = http.NoBody
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
