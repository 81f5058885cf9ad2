package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/microservices/http-api/service"
)

type TitleHandler struct {
	svc service.TitleService
}

func NewTitleHandler(svc service.TitleService) *TitleHandler {
	return &TitleHandler{svc: svc}
}

// RegisterRoutes mounts the catalogue routes. Nested review and comment
// routes are registered on the same group by their own handlers.
func (h *TitleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	gate := middleware.AdminOrReadOnly()
	rg.GET("", gate, h.List)
	rg.POST("", gate, h.Create)
	rg.GET("/:title_id", gate, h.Get)
	rg.PATCH("/:title_id", gate, h.Patch)
	rg.PUT("/:title_id", gate, h.Replace)
	rg.DELETE("/:title_id", gate, h.Delete)
}

// List supports genre and category slugs, a name fragment and an exact year.
// GET /api/v1/titles?genre=&category=&name=&year=
func (h *TitleHandler) List(c *gin.Context) {
	filter := repository.TitleFilter{
		Genre:    c.Query("genre"),
		Category: c.Query("category"),
		Name:     c.Query("name"),
	}
	if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a number"})
			return
		}
		filter.Year = &year
	}

	page, pageSize := pagination(c)
	ctx := c.Request.Context()

	list, total, err := h.svc.List(ctx, filter, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.TitleResponse, 0, len(list))
	for i := range list {
		resp = append(resp, dto.FromModelToTitleResponse(&list[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, total, page, pageSize))
}

func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	title, err := h.svc.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToTitleResponse(title))
}

func (h *TitleHandler) Create(c *gin.Context) {
	var in dto.TitleCreateRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()

	created, err := h.svc.Create(ctx, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToTitleResponse(created))
}

// Patch changes only the fields present in the body.
func (h *TitleHandler) Patch(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	var in dto.TitlePatchRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	h.update(c, id, in)
}

// Replace requires a full body; genres and category left out are cleared.
func (h *TitleHandler) Replace(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	var in dto.TitleCreateRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	h.update(c, id, in.ToPatch())
}

func (h *TitleHandler) update(c *gin.Context, id int64, patch dto.TitlePatchRequest) {
	ctx := c.Request.Context()

	updated, err := h.svc.Update(ctx, id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToTitleResponse(updated))
}

func (h *TitleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if err := h.svc.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
