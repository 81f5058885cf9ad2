package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"yamdb/internal/domain"
	"yamdb/internal/microservices/http-api/handler"
	"yamdb/internal/microservices/http-api/models"
)

func setupComments() (*MockCommentService, *gin.Engine) {
	commentService := new(MockCommentService)
	router, v1 := setupRouter(newAuthService())
	handler.NewCommentHandler(commentService).RegisterRoutes(v1.Group("/titles"))
	return commentService, router
}

const commentsPath = "/api/v1/titles/1/reviews/4/comments"

func TestComments_ListAndCreate(t *testing.T) {
	commentService, router := setupComments()
	comment := &models.Comment{ID: 8, ReviewID: 4, AuthorID: bob.ID, Author: *bob, Text: "Agreed"}
	commentService.On("List", mock.Anything, int64(1), int64(4), 1, 20).Return([]models.Comment{*comment}, int64(1), nil)
	commentService.On("Create", mock.Anything, bob.Actor(), int64(1), int64(4), "Agreed").Return(comment, nil)

	w := perform(router, http.MethodGet, commentsPath, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "bob", data[0].(map[string]any)["author"])

	assert.Equal(t, http.StatusUnauthorized, perform(router, http.MethodPost, commentsPath, "", map[string]string{"text": "Agreed"}).Code)

	w = perform(router, http.MethodPost, commentsPath, "bob-token", map[string]string{"text": "Agreed"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Agreed", decode(t, w)["text"])

	w = perform(router, http.MethodPost, commentsPath, "bob-token", map[string]string{"text": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	commentService.AssertExpectations(t)
}

func TestComments_DetailUpdateDelete(t *testing.T) {
	commentService, router := setupComments()
	text := "Edited"
	commentService.On("Get", mock.Anything, int64(1), int64(4), int64(8)).
		Return(&models.Comment{ID: 8, Author: *bob, Text: "Agreed"}, nil)
	commentService.On("Get", mock.Anything, int64(1), int64(4), int64(9)).
		Return(nil, fmt.Errorf("get comment: %w", domain.ErrNotFound))
	commentService.On("Update", mock.Anything, alice.Actor(), int64(1), int64(4), int64(8), &text).
		Return(nil, domain.ErrForbidden)
	commentService.On("Update", mock.Anything, bob.Actor(), int64(1), int64(4), int64(8), &text).
		Return(&models.Comment{ID: 8, Author: *bob, Text: text}, nil)
	commentService.On("Delete", mock.Anything, admin.Actor(), int64(1), int64(4), int64(8)).Return(nil)

	assert.Equal(t, http.StatusOK, perform(router, http.MethodGet, commentsPath+"/8", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, perform(router, http.MethodGet, commentsPath+"/9", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, perform(router, http.MethodGet, "/api/v1/titles/1/reviews/x/comments/8", "", nil).Code)

	assert.Equal(t, http.StatusForbidden, perform(router, http.MethodPatch, commentsPath+"/8", "alice-token", map[string]string{"text": text}).Code)
	w := perform(router, http.MethodPatch, commentsPath+"/8", "bob-token", map[string]string{"text": text})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, text, decode(t, w)["text"])

	assert.Equal(t, http.StatusNoContent, perform(router, http.MethodDelete, commentsPath+"/8", "admin-token", nil).Code)
	commentService.AssertExpectations(t)
}
