package presenter

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ページネーションの既定値
const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Response は公開APIの成功レスポンスです（エラーは middleware.ErrorResponse）
type Response struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta"`
}

// Meta はレスポンスの付帯情報です
// request_id はログやアップロード処理の追跡に使います
type Meta struct {
	RequestID  string      `json:"request_id,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination はページネーション情報です
type Pagination struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// OK は200で返します
func OK(c echo.Context, data interface{}) error {
	return respond(c, http.StatusOK, data, nil)
}

// Created は201で返します
func Created(c echo.Context, data interface{}) error {
	return respond(c, http.StatusCreated, data, nil)
}

// List はページネーション付きで返します
func List(c echo.Context, data interface{}, pagination *Pagination) error {
	return respond(c, http.StatusOK, data, pagination)
}

func respond(c echo.Context, status int, data interface{}, pagination *Pagination) error {
	var meta *Meta
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	if requestID != "" || pagination != nil {
		meta = &Meta{RequestID: requestID, Pagination: pagination}
	}
	return c.JSON(status, Response{Data: data, Meta: meta})
}

// NewPagination は総件数からページ情報を計算します
func NewPagination(page, perPage, totalItems int) *Pagination {
	totalPages := 1
	if totalItems > 0 {
		totalPages = (totalItems + perPage - 1) / perPage
	}
	return &Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// NormalizePagination は範囲外のページ指定を既定値に丸めます
func NormalizePagination(page, perPage int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	switch {
	case perPage < 1:
		perPage = DefaultPerPage
	case perPage > MaxPerPage:
		perPage = MaxPerPage
	}
	return page, perPage
}

// Offset はページ番号からオフセットを計算します
func Offset(page, perPage int) int {
	return (page - 1) * perPage
}
