package routers

import (
	"github.com/gin-gonic/gin"
	"github.com/iconhive/IconHive/config"
	"github.com/iconhive/IconHive/views"
)

func IconRouters(r *gin.Engine) {
	iconHandler := views.NewIconHandler()
	downloadHandler := views.NewDownloadHandler()
	apiRouter := r.Group("/api")
	{
		// 上传相关
		apiRouter.POST("/icon/upload", iconHandler.UploadIcons)
		apiRouter.POST("/icon/upload/replace", iconHandler.UploadReplacingIcon)
		apiRouter.POST("/icon/upload/pack", iconHandler.UploadIconPack)
	}
	{
		// 查询相关
		apiRouter.POST("/icon/list", iconHandler.GetByID)
		apiRouter.GET("/icon/search", iconHandler.GetByCondition)
		apiRouter.GET("/icon/info/:iconId", iconHandler.GetIconInfo)
		apiRouter.GET("/icon/uploaded", iconHandler.GetUploadedIcons)
		apiRouter.GET("/icon/submitted", iconHandler.GetSubmittedIcons)
	}
	{
		// 生命周期变更
		apiRouter.POST("/icon/replace", iconHandler.ReplaceIcon)
		apiRouter.POST("/icon/submit", iconHandler.SubmitIcons)
		apiRouter.POST("/icon/delete", iconHandler.DeleteIcon)
		apiRouter.POST("/icon/update", iconHandler.UpdateIconInfo)
	}
	{
		// 字体包下载，编译结果通过静态路由取回
		apiRouter.POST("/download", downloadHandler.DownloadIcons)
		apiRouter.Static("/caches", config.Download)
	}
}
