package views

import (
	"github.com/gin-gonic/gin"
	"github.com/iconhive/IconHive/response"
	"github.com/iconhive/IconHive/services"
)

type DownloadHandler struct {
	service *services.DownloadService
}

func NewDownloadHandler() *DownloadHandler {
	return &DownloadHandler{
		service: services.NewDownloadService(),
	}
}

// DownloadIcons 编译字体包并返回 zip 文件名，通过静态路由取文件
func (h *DownloadHandler) DownloadIcons(c *gin.Context) {
	var req services.DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数格式错误: "+err.Error())
		return
	}
	name, err := h.service.DownloadIcons(req)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, gin.H{"file": name})
}
