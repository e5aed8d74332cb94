package handler

import "github.com/gin-gonic/gin"

func RegisterRoutes(r gin.IRouter, news *NewsHandler) {
	r.GET("/", news.GetRoot)
	r.GET("/news", news.GetNews)
	r.GET("/health", news.GetHealth)
}
