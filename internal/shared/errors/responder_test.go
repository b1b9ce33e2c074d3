package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var errSoldOut = stderrors.New("product is sold out")

func serve(t *testing.T, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/api/products/:id", handler)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/PROD0001", nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) ProblemDetail {
	t.Helper()
	require.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var p ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestChainedResponderUsesFirstMatchingMapper(t *testing.T) {
	r := NewChainedResponder("https://petcare.example",
		func(err error) (ProblemDetail, bool) { return ProblemDetail{}, false },
		func(err error) (ProblemDetail, bool) {
			if stderrors.Is(err, errSoldOut) {
				return FromError(ErrConflict, err), true
			}
			return ProblemDetail{}, false
		},
	)
	rec := serve(t, func(c *gin.Context) {
		r.RespondError(c, fmt.Errorf("place order: %w", errSoldOut))
	})

	require.Equal(t, http.StatusConflict, rec.Code)
	p := decode(t, rec)
	require.Equal(t, "https://petcare.example"+TypeConflict, p.Type)
	require.Equal(t, "/api/products/PROD0001", p.Instance)
	require.Equal(t, "place order: product is sold out", p.Detail)
}

func TestRespondErrorHidesUnmappedDetail(t *testing.T) {
	r := NewChainedResponder("")
	rec := serve(t, func(c *gin.Context) {
		r.RespondError(c, stderrors.New("pq: connection refused"))
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	p := decode(t, rec)
	require.Equal(t, TypeInternal, p.Type)
	require.NotContains(t, p.Detail, "pq")
}

func TestRespondErrorPassesProblemsThrough(t *testing.T) {
	r := NewResponder("")
	rec := serve(t, func(c *gin.Context) {
		r.RespondError(c, fmt.Errorf("lookup: %w", NotFoundProblem("product", "PROD0001")))
	})

	require.Equal(t, http.StatusNotFound, rec.Code)
	p := decode(t, rec)
	require.Equal(t, "product", p.Extensions["resourceType"])
	require.Equal(t, "PROD0001", p.Extensions["identifier"])
}

func TestUnauthorizedKeepsExistingChallenge(t *testing.T) {
	r := NewResponder("")
	rec := serve(t, func(c *gin.Context) {
		c.Header("WWW-Authenticate", `Bearer error="invalid_token"`)
		r.Unauthorized(c, "token expired")
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, `Bearer error="invalid_token"`, rec.Header().Get("WWW-Authenticate"))

	rec = serve(t, func(c *gin.Context) { r.Unauthorized(c, "login required") })
	require.Equal(t, `Bearer realm="petcare-api"`, rec.Header().Get("WWW-Authenticate"))
}

func TestFromErrorKeepsCause(t *testing.T) {
	p := FromError(ErrConflict, errSoldOut)
	require.ErrorIs(t, p, errSoldOut)
	require.False(t, p.Server())
	require.True(t, ErrInternal.Server())

	base := ErrValidation.WithExtension("field", "price")
	extended := base.WithExtension("min", 1)
	require.Len(t, base.Extensions, 1)
	require.Len(t, extended.Extensions, 2)
	require.Equal(t, ErrNotFound, FromError(ErrNotFound, nil))
}
