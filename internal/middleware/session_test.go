package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentiva/slot-reservation/internal/utils"
)

const testSecret = "test-secret"

func runSessionAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/v1/holds", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	var gotSession string
	next := func(c echo.Context) error {
		gotSession = SessionID(c)
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, SessionAuth(testSecret)(next)(c))
	return rec, gotSession
}

func TestSessionAuthValidToken(t *testing.T) {
	t.Parallel()

	tok, err := utils.NewSessionToken(testSecret, "sess-42", time.Hour)
	require.NoError(t, err)

	rec, session := runSessionAuth(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sess-42", session)
}

func TestSessionAuthMissingHeader(t *testing.T) {
	t.Parallel()

	rec, session := runSessionAuth(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, session)
}

func TestSessionAuthWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := utils.NewSessionToken("other-secret", "sess-42", time.Hour)
	require.NoError(t, err)

	rec, _ := runSessionAuth(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuthExpiredToken(t *testing.T) {
	t.Parallel()

	tok, err := utils.NewSessionToken(testSecret, "sess-42", -time.Minute)
	require.NoError(t, err)

	rec, _ := runSessionAuth(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuthEmptySubject(t *testing.T) {
	t.Parallel()

	tok, err := utils.NewSessionToken(testSecret, "", time.Hour)
	require.NoError(t, err)

	rec, _ := runSessionAuth(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
