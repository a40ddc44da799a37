package views

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/iconhive/IconHive/config"
	"github.com/iconhive/IconHive/response"
	"github.com/iconhive/IconHive/services"
)

type IconHandler struct {
	service *services.IconService
}

func NewIconHandler() *IconHandler {
	return &IconHandler{
		service: services.NewIconService(),
	}
}

// UploadIcons 上传图标
// @Summary 批量上传 SVG 图标
// @Accept multipart/form-data
// @Param icon formData file true "SVG 图标文件，可多个"
func (h *IconHandler) UploadIcons(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.BadRequest(c, "缺少用户信息")
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "未获取上传的图标文件，请检查 formdata 的 icon 字段")
		return
	}
	if err := h.service.UploadIcons(form.File["icon"], userID); err != nil {
		renderError(c, err)
		return
	}
	response.SuccessWithMessage(c, "图标上传成功", nil)
}

// UploadReplacingIcon 上传替换图标，返回 replaceId 供后续替换使用
func (h *IconHandler) UploadReplacingIcon(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.BadRequest(c, "缺少用户信息")
		return
	}
	file, err := c.FormFile("icon")
	if err != nil {
		response.BadRequest(c, "未获取上传的图标文件，请检查 formdata 的 icon 字段")
		return
	}
	replaceID, err := h.service.UploadReplacingIcon(file, userID)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, gin.H{"replaceId": replaceID})
}

// UploadIconPack 上传图标压缩包（zip/rar），解包后批量入库
func (h *IconHandler) UploadIconPack(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.BadRequest(c, "缺少用户信息")
		return
	}
	file, err := c.FormFile("pack")
	if err != nil {
		response.BadRequest(c, "未获取上传的压缩包，请检查 formdata 的 pack 字段")
		return
	}
	scratchDir := filepath.Join(config.Download, "scratch")
	if err := os.MkdirAll(scratchDir, os.ModePerm); err != nil {
		response.InternalError(c, err.Error())
		return
	}
	archivePath := filepath.Join(scratchDir, uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, archivePath); err != nil {
		response.InternalError(c, err.Error())
		return
	}
	defer os.Remove(archivePath)

	count, err := h.service.UploadIconPack(archivePath, userID)
	if err != nil {
		renderError(c, err)
		return
	}
	response.SuccessWithMessage(c, "图标上传成功", gin.H{"count": count})
}

type iconIDsRequest struct {
	Icons []uint `json:"icons"`
}

// GetByID 按 id 集合查询图标
func (h *IconHandler) GetByID(c *gin.Context) {
	var req iconIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数格式错误: "+err.Error())
		return
	}
	icons, err := h.service.GetByID(req.Icons)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, icons)
}

// GetByCondition 按名称或标签检索线上图标
func (h *IconHandler) GetByCondition(c *gin.Context) {
	result, err := h.service.GetByCondition(c.Query("q"))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, result)
}

// GetIconInfo 查询单个图标详情
func (h *IconHandler) GetIconInfo(c *gin.Context) {
	iconID, err := strconv.ParseUint(c.Param("iconId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "不支持传入空参数")
		return
	}
	detail, err := h.service.GetIconInfo(uint(iconID))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, detail)
}

// GetUploadedIcons 获取当前用户已上传未提交的图标
func (h *IconHandler) GetUploadedIcons(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.BadRequest(c, "缺少用户信息")
		return
	}
	icons, err := h.service.GetUploadedIcons(userID)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, icons)
}

// GetSubmittedIcons 获取当前用户已提交的图标，按提交时间分组分页
func (h *IconHandler) GetSubmittedIcons(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.BadRequest(c, "缺少用户信息")
		return
	}
	page, pageSize := pageParams(c)
	groups, total, err := h.service.GetSubmittedIcons(userID, page, pageSize)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, gin.H{
		"list":       groups,
		"totalCount": total,
		"page":       page,
		"page_size":  pageSize,
	})
}

type replaceRequest struct {
	FromID uint `json:"fromId"`
	ToID   uint `json:"toId"`
}

// ReplaceIcon 用待替换图标替换线上图标
func (h *IconHandler) ReplaceIcon(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.BadRequest(c, "缺少用户信息")
		return
	}
	var req replaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数格式错误: "+err.Error())
		return
	}
	if req.FromID == 0 || req.ToID == 0 {
		response.BadRequest(c, "必须传入 fromId 和 toId")
		return
	}
	if err := h.service.ReplaceIcon(req.FromID, req.ToID, userID); err != nil {
		renderError(c, err)
		return
	}
	response.SuccessWithMessage(c, "图标替换成功", nil)
}

type submitRequest struct {
	RepoID uint                      `json:"repoId"`
	Icons  []services.SubmitIconItem `json:"icons"`
}

// SubmitIcons 把已上传的图标提交到大库
func (h *IconHandler) SubmitIcons(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.BadRequest(c, "缺少用户信息")
		return
	}
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数格式错误: "+err.Error())
		return
	}
	if err := h.service.SubmitIcons(req.RepoID, req.Icons, userID); err != nil {
		renderError(c, err)
		return
	}
	response.SuccessWithMessage(c, "图标提交成功", nil)
}

type deleteRequest struct {
	IconID uint `json:"iconId"`
}

// DeleteIcon 软删除自己上传的图标
func (h *IconHandler) DeleteIcon(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.BadRequest(c, "缺少用户信息")
		return
	}
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IconID == 0 {
		response.BadRequest(c, "缺少图标id")
		return
	}
	if err := h.service.DeleteIcon(req.IconID, userID); err != nil {
		renderError(c, err)
		return
	}
	response.SuccessWithMessage(c, "删除图标成功", nil)
}

type updateRequest struct {
	IconID uint   `json:"iconId"`
	Tags   string `json:"tags"`
	Name   string `json:"name"`
}

// UpdateIconInfo 修改图标的标签和名称
func (h *IconHandler) UpdateIconInfo(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.BadRequest(c, "缺少用户信息")
		return
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IconID == 0 {
		response.BadRequest(c, "缺少图标id")
		return
	}
	meta, err := h.service.UpdateIconInfo(req.IconID, req.Tags, req.Name, userID)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, meta)
}
