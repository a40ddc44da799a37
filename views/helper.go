package views

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/iconhive/IconHive/response"
	"github.com/iconhive/IconHive/services"
)

// currentUserID 从请求中取操作用户 id
// 会话校验由网关层完成，这里只做取值
func currentUserID(c *gin.Context) (uint, bool) {
	v := c.GetHeader("X-User-Id")
	if v == "" {
		v = c.Query("userId")
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// pageParams 解析分页参数
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

// renderError 把服务层错误翻译为 HTTP 响应
func renderError(c *gin.Context, err error) {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		response.BadRequest(c, validation.Message)
		return
	}
	var invariant *services.InvariantError
	if errors.As(err, &invariant) {
		response.BadRequest(c, invariant.Message)
		return
	}
	var notFound *services.NotFoundError
	if errors.As(err, &notFound) {
		response.NotFound(c, notFound.Message)
		return
	}
	response.InternalError(c, err.Error())
}
