package main

import (
	"iea/src/db"
	"iea/src/models"
	"iea/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func messageHandlers(g *gin.Engine, admin *gin.RouterGroup) {
	g.POST("/api/messages", func(ctx *gin.Context) {
		var body types.CreateMessageRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			log.Printf("Error validating request: %s\n", err.Error())
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		message := models.Message{
			Name:    body.Name,
			Email:   body.Email,
			Message: body.Message,
		}
		dbi := db.GetDb()
		if err := dbi.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&message).Error
		}); err != nil {
			log.Printf("Error saving message from [%s]: %s\n", body.Email, err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"success": true})
	})

	admin.GET("/messages", func(ctx *gin.Context) {
		var messages []models.Message
		dbi := db.GetDb()
		if err := dbi.
			Order("created_at desc").
			Find(&messages).
			Error; err != nil {
			log.Printf("Error retrieving messages: %s\n", err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
			return
		}
		ctx.JSON(http.StatusOK, messages)
	})
}
