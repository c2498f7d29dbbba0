package main

import (
	"errors"
	"iea/src/db"
	"iea/src/lib/storage"
	"iea/src/models"
	"iea/src/types"
	"iea/src/utils"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// saveUpload stores the (optional) single uploaded file of a CMS form and
// returns its public URL. No file on the form is not an error.
func saveUpload(ctx *gin.Context, field string, name string) (string, error) {
	fileHeader, err := ctx.FormFile(field)
	if err != nil {
		return "", nil
	}
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()
	key := utils.AssetKey(name, fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")
	url, err := storage.GetBackend().Put(ctx.Request.Context(), key, file, contentType)
	if err != nil {
		log.Printf("Error storing uploaded asset [%s]: %s\n", key, err.Error())
		return "", err
	}
	return url, nil
}

// removeAsset drops the backing file of a deleted record. Best effort: the
// record is gone either way.
func removeAsset(ctx *gin.Context, url string) {
	if url == "" {
		return
	}
	if err := storage.GetBackend().Remove(ctx.Request.Context(), url); err != nil {
		log.Printf("Could not remove asset [%s]: %s\n", url, err.Error())
	}
}

func cmsHandlers(g *gin.Engine, admin *gin.RouterGroup) {
	sponsorHandlers(g, admin)
	speakerHandlers(g, admin)
	teamHandlers(g, admin)
	testimonialHandlers(g, admin)
	storyHandlers(g, admin)
	highlightHandlers(g, admin)
}

func sponsorHandlers(g *gin.Engine, admin *gin.RouterGroup) {
	admin.POST("/sponsors", func(ctx *gin.Context) {
		name := ctx.PostForm("name")
		if name == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		logoUrl, err := saveUpload(ctx, "logo", name)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add sponsor"})
			return
		}
		sponsor := models.Sponsor{ResourceID: uuid.NewString(), Name: name, LogoURL: logoUrl}
		dbi := db.GetDb()
		if err := dbi.Create(&sponsor).Error; err != nil {
			log.Printf("Error saving sponsor [%s]: %s\n", name, err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add sponsor"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"success": true, "data": sponsor})
	})
	g.GET("/api/sponsors", func(ctx *gin.Context) {
		var sponsors []models.Sponsor
		if err := db.GetDb().Find(&sponsors).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sponsors"})
			return
		}
		ctx.JSON(http.StatusOK, sponsors)
	})
	admin.DELETE("/sponsors/:id", func(ctx *gin.Context) {
		var params types.ResourceURIParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var sponsor models.Sponsor
		dbi := db.GetDb()
		if err := dbi.Where(&models.Sponsor{ResourceID: params.ID}).First(&sponsor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
				return
			}
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Delete failed"})
			return
		}
		if err := dbi.Delete(&sponsor).Error; err != nil {
			log.Printf("Error deleting sponsor [%s]: %s\n", params.ID, err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Delete failed"})
			return
		}
		removeAsset(ctx, sponsor.LogoURL)
		ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Deleted successfully"})
	})
}

func speakerHandlers(g *gin.Engine, admin *gin.RouterGroup) {
	admin.POST("/speakers", func(ctx *gin.Context) {
		name := ctx.PostForm("name")
		role := ctx.PostForm("role")
		if name == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		imageUrl, err := saveUpload(ctx, "speakerImg", name)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add speaker"})
			return
		}
		speaker := models.Speaker{ResourceID: uuid.NewString(), Name: name, Role: role, ImageURL: imageUrl}
		if err := db.GetDb().Create(&speaker).Error; err != nil {
			log.Printf("Error saving speaker [%s]: %s\n", name, err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add speaker"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"success": true, "data": speaker})
	})
	g.GET("/api/speakers", func(ctx *gin.Context) {
		var speakers []models.Speaker
		if err := db.GetDb().Find(&speakers).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch speakers"})
			return
		}
		ctx.JSON(http.StatusOK, speakers)
	})
	admin.DELETE("/speakers/:id", func(ctx *gin.Context) {
		var params types.ResourceURIParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var speaker models.Speaker
		dbi := db.GetDb()
		if err := dbi.Where(&models.Speaker{ResourceID: params.ID}).First(&speaker).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
				return
			}
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Delete failed"})
			return
		}
		if err := dbi.Delete(&speaker).Error; err != nil {
			log.Printf("Error deleting speaker [%s]: %s\n", params.ID, err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Delete failed"})
			return
		}
		removeAsset(ctx, speaker.ImageURL)
		ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Deleted successfully"})
	})
}

func teamHandlers(g *gin.Engine, admin *gin.RouterGroup) {
	admin.POST("/team-members", func(ctx *gin.Context) {
		name := ctx.PostForm("name")
		role := ctx.PostForm("role")
		bio := ctx.PostForm("bio")
		if name == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		imageUrl, err := saveUpload(ctx, "teamImg", name)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add team member"})
			return
		}
		member := models.TeamMember{ResourceID: uuid.NewString(), Name: name, Role: role, Bio: bio, ImageURL: imageUrl}
		if err := db.GetDb().Create(&member).Error; err != nil {
			log.Printf("Error saving team member [%s]: %s\n", name, err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add team member"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"success": true, "data": member})
	})
	g.GET("/api/team", func(ctx *gin.Context) {
		var members []models.TeamMember
		if err := db.GetDb().Find(&members).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team members"})
			return
		}
		ctx.JSON(http.StatusOK, members)
	})
	admin.DELETE("/team/:id", func(ctx *gin.Context) {
		var params types.ResourceURIParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var member models.TeamMember
		dbi := db.GetDb()
		if err := dbi.Where(&models.TeamMember{ResourceID: params.ID}).First(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
				return
			}
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Delete failed"})
			return
		}
		if err := dbi.Delete(&member).Error; err != nil {
			log.Printf("Error deleting team member [%s]: %s\n", params.ID, err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Delete failed"})
			return
		}
		removeAsset(ctx, member.ImageURL)
		ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Deleted successfully"})
	})
}

func testimonialHandlers(g *gin.Engine, admin *gin.RouterGroup) {
	admin.POST("/testimonials", func(ctx *gin.Context) {
		name := ctx.PostForm("name")
		role := ctx.PostForm("role")
		quote := ctx.PostForm("quote")
		if name == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		imageUrl, err := saveUpload(ctx, "testimonialImg", name)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add testimonial"})
			return
		}
		testimonial := models.Testimonial{ResourceID: uuid.NewString(), Name: name, Role: role, Quote: quote, ImageURL: imageUrl}
		if err := db.GetDb().Create(&testimonial).Error; err != nil {
			log.Printf("Error saving testimonial [%s]: %s\n", name, err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add testimonial"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"success": true, "data": testimonial})
	})
	g.GET("/api/testimonials", func(ctx *gin.Context) {
		var testimonials []models.Testimonial
		if err := db.GetDb().Find(&testimonials).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch testimonials"})
			return
		}
		ctx.JSON(http.StatusOK, testimonials)
	})
	admin.DELETE("/testimonials/:id", func(ctx *gin.Context) {
		var params types.ResourceURIParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var testimonial models.Testimonial
		dbi := db.GetDb()
		if err := dbi.Where(&models.Testimonial{ResourceID: params.ID}).First(&testimonial).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
				return
			}
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Delete failed"})
			return
		}
		if err := dbi.Delete(&testimonial).Error; err != nil {
			log.Printf("Error deleting testimonial [%s]: %s\n", params.ID, err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Delete failed"})
			return
		}
		removeAsset(ctx, testimonial.ImageURL)
		ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Deleted successfully"})
	})
}

func storyHandlers(g *gin.Engine, admin *gin.RouterGroup) {
	admin.POST("/stories", func(ctx *gin.Context) {
		title := ctx.PostForm("title")
		excerpt := ctx.PostForm("excerpt")
		date := ctx.PostForm("date")
		if title == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
			return
		}
		categories := types.StringList{}
		for _, c := range strings.Split(ctx.PostForm("categories"), ",") {
			if c = strings.TrimSpace(c); c != "" {
				categories = append(categories, c)
			}
		}
		logoUrl, err := saveUpload(ctx, "storyImg", title)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add story"})
			return
		}
		story := models.Story{
			ResourceID: uuid.NewString(),
			Title:      title,
			Categories: categories,
			Excerpt:    excerpt,
			Date:       date,
			LogoURL:    logoUrl,
		}
		if err := db.GetDb().Create(&story).Error; err != nil {
			log.Printf("Error saving story [%s]: %s\n", title, err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add story"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"success": true, "data": story})
	})
	g.GET("/api/stories", func(ctx *gin.Context) {
		var stories []models.Story
		if err := db.GetDb().Find(&stories).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stories"})
			return
		}
		ctx.JSON(http.StatusOK, stories)
	})
	admin.DELETE("/stories/:id", func(ctx *gin.Context) {
		var params types.ResourceURIParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var story models.Story
		dbi := db.GetDb()
		if err := dbi.Where(&models.Story{ResourceID: params.ID}).First(&story).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
				return
			}
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Delete failed"})
			return
		}
		if err := dbi.Delete(&story).Error; err != nil {
			log.Printf("Error deleting story [%s]: %s\n", params.ID, err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Delete failed"})
			return
		}
		removeAsset(ctx, story.LogoURL)
		ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Deleted successfully"})
	})
}

func highlightHandlers(g *gin.Engine, admin *gin.RouterGroup) {
	admin.POST("/highlights", func(ctx *gin.Context) {
		name := ctx.PostForm("name")
		if name == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		imageUrl, err := saveUpload(ctx, "highlightImg", name)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add highlight"})
			return
		}
		highlight := models.Highlight{ResourceID: uuid.NewString(), Name: name, ImageURL: imageUrl}
		if err := db.GetDb().Create(&highlight).Error; err != nil {
			log.Printf("Error saving highlight [%s]: %s\n", name, err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add highlight"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"success": true, "data": highlight})
	})
	g.GET("/api/highlights", func(ctx *gin.Context) {
		var highlights []models.Highlight
		if err := db.GetDb().Find(&highlights).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch highlights"})
			return
		}
		ctx.JSON(http.StatusOK, highlights)
	})
	admin.DELETE("/highlights/:id", func(ctx *gin.Context) {
		var params types.ResourceURIParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var highlight models.Highlight
		dbi := db.GetDb()
		if err := dbi.Where(&models.Highlight{ResourceID: params.ID}).First(&highlight).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
				return
			}
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Delete failed"})
			return
		}
		if err := dbi.Delete(&highlight).Error; err != nil {
			log.Printf("Error deleting highlight [%s]: %s\n", params.ID, err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Delete failed"})
			return
		}
		removeAsset(ctx, highlight.ImageURL)
		ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Deleted successfully"})
	})
}
