package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iconhive/IconHive/config"
	"github.com/iconhive/IconHive/methods"
	"github.com/iconhive/IconHive/models"
	"github.com/iconhive/IconHive/routers"
)

func main() {
	models.InitDB()

	// 清理超过 30 天的历史构建
	if err := methods.CleanStaleBuilds(config.Download, 30*24*time.Hour); err != nil {
		log.Printf("清理历史构建失败: %v", err)
	}

	r := gin.Default()
	routers.IconRouters(r)

	addr := config.MainRouter
	if addr == "" {
		addr = ":8426"
	}
	log.Printf("服务启动: %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("服务启动失败: %v", err)
	}
}
