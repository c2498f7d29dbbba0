package middlewares

import (
	"iea/src/types"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func jwtKey() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// AdminAuth guards the admin console surface: CMS mutations, message
// listing and the ticket roster.
func AdminAuth(ctx *gin.Context) {
	bearerToken := ctx.Request.Header.Get("Authorization")
	if !strings.HasPrefix(bearerToken, "Bearer") {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	parts := strings.Split(bearerToken, " ")
	if len(parts) != 2 || parts[1] == "" {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (any, error) {
		return jwtKey(), nil
	})
	if err != nil {
		log.Printf("token error: %s\n", err.Error())
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	if !tkn.Valid || claims.Role != "admin" {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	ctx.Set("email", claims.Email)
	ctx.Set("role", claims.Role)
}
