package main

import (
	"encoding/json"
	"errors"
	"iea/src/db"
	"iea/src/models"
	"iea/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// summitHandlers serves the two singleton documents of the site: the landing
// page summit info and the registration page config. Saving replaces the
// single row wholesale.
func summitHandlers(g *gin.Engine, admin *gin.RouterGroup) {
	admin.POST("/summit-info", func(ctx *gin.Context) {
		info := models.SummitInfo{
			Headline:    ctx.PostForm("headline"),
			SubHeadline: ctx.PostForm("subHeadline"),
			Description: ctx.PostForm("description"),
			DateText:    ctx.PostForm("dateText"),
			TargetDate:  ctx.PostForm("targetDate"),
			Location:    ctx.PostForm("location"),
		}
		if stats := ctx.PostForm("stats"); stats != "" {
			if err := json.Unmarshal([]byte(stats), &info.Stats); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "stats must be a JSON array"})
				return
			}
		}
		heroUrl, err := saveUpload(ctx, "heroImage", "summit-hero")
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save summit info"})
			return
		}
		info.HeroImage = heroUrl

		dbi := db.GetDb()
		if err := dbi.Transaction(func(tx *gorm.DB) error {
			var existing models.SummitInfo
			err := tx.First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(&info).Error
			}
			if err != nil {
				return err
			}
			if info.HeroImage == "" {
				info.HeroImage = existing.HeroImage
			}
			info.ID = existing.ID
			info.CreatedAt = existing.CreatedAt
			return tx.Save(&info).Error
		}); err != nil {
			log.Printf("Error saving summit info: %s\n", err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save summit info"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"success": true, "data": info})
	})

	g.GET("/api/summit-info", func(ctx *gin.Context) {
		var info models.SummitInfo
		err := db.GetDb().First(&info).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusOK, gin.H{})
			return
		}
		if err != nil {
			log.Printf("Error retrieving summit info: %s\n", err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch summit info"})
			return
		}
		ctx.JSON(http.StatusOK, info)
	})

	admin.POST("/registration-config", func(ctx *gin.Context) {
		var body types.CreateRegistrationConfigRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cfg := models.RegistrationConfig{
			Title:          body.Title,
			Description:    body.Description,
			SuccessMessage: body.SuccessMessage,
			HeroImage:      body.HeroImage,
		}
		dbi := db.GetDb()
		if err := dbi.Transaction(func(tx *gorm.DB) error {
			var existing models.RegistrationConfig
			err := tx.First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(&cfg).Error
			}
			if err != nil {
				return err
			}
			cfg.ID = existing.ID
			cfg.CreatedAt = existing.CreatedAt
			return tx.Save(&cfg).Error
		}); err != nil {
			log.Printf("Error saving registration config: %s\n", err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save registration config"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"success": true, "data": cfg})
	})

	g.GET("/api/registration-config", func(ctx *gin.Context) {
		var cfg models.RegistrationConfig
		err := db.GetDb().First(&cfg).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusOK, gin.H{})
			return
		}
		if err != nil {
			log.Printf("Error retrieving registration config: %s\n", err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch registration config"})
			return
		}
		ctx.JSON(http.StatusOK, cfg)
	})
}
