package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"yamdb/internal/domain"
	"yamdb/internal/microservices/http-api/service"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidFormat, http.StatusBadRequest},
		{fmt.Errorf("wrap: %w", domain.ErrUnknownGenre), http.StatusBadRequest},
		{service.ErrInvalidToken, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("get title: %w", domain.ErrNotFound), http.StatusNotFound},
		{domain.ErrDuplicateReview, http.StatusConflict},
		{domain.ErrTooManyRequests, http.StatusTooManyRequests},
		{fmt.Errorf("%w: %w", domain.ErrDelivery, errors.New("smtp")), http.StatusServiceUnavailable},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusOf(tc.err), tc.err.Error())
	}
}

func TestPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := map[string][2]int{
		"":                       {1, 20},
		"page=3&page_size=50":    {3, 50},
		"page=0&page_size=0":     {1, 20},
		"page=two&page_size=101": {1, 20},
		"page_size=100":          {1, 100},
	}
	for query, want := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
		page, pageSize := pagination(c)
		assert.Equal(t, want, [2]int{page, pageSize}, query)
	}
}
