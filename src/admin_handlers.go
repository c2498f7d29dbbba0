package main

import (
	"crypto/subtle"
	"iea/src/types"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func adminAuthRoutes(g *gin.Engine) {
	g.POST("/api/admin/login", func(ctx *gin.Context) {
		var body types.AdminLoginRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		adminEmail := os.Getenv("ADMIN_EMAIL")
		adminPassword := os.Getenv("ADMIN_PASSWORD")
		if adminEmail == "" || adminPassword == "" {
			log.Println("Admin credentials are not configured")
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied"})
			return
		}
		emailOk := subtle.ConstantTimeCompare([]byte(body.Email), []byte(adminEmail)) == 1
		passOk := subtle.ConstantTimeCompare([]byte(body.Password), []byte(adminPassword)) == 1
		if !emailOk || !passOk {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied"})
			return
		}

		now := time.Now()
		claims := types.Claims{
			Email: body.Email,
			Role:  "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   body.Email,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
			},
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
		if err != nil {
			log.Printf("Error signing admin token: %s\n", err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"token": signed})
	})
}
