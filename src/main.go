package main

import (
	"iea/src/boot"
	"iea/src/lib/storage"
	"iea/src/middlewares"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"regexp"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	_ "github.com/joho/godotenv/autoload"
)

// mobilemoney restricts payment initiation to the operators PayChangu
// supports in Malawi.
var mobileMoneyValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	method, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return method == "airtel_money" || method == "mpamba"
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func initLogger() {
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	gin.ForceConsoleColor()

	f, _ := os.Create(apiLogs)
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func main() {
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}
	initLogger()

	boot.InitDb()
	boot.InitUploadsDir()

	router := setupRouter()

	appHost := os.Getenv("APP_HOST")
	if apiEnv == "local" {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "DELETE", "HEAD")
		cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
		cc.AllowOriginFunc = func(origin string) bool {
			match, _ := regexp.MatchString(appHost, origin)
			return match
		}
		cc.AllowCredentials = true
		cc.AllowAllOrigins = false
		router.Use(cors.New(cc))
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("mobilemoney", mobileMoneyValidatorFunc)
	}

	if os.Getenv("STORAGE_BACKEND") != "s3" {
		router.Static("/uploads", storage.UploadsDir())
	}

	paychanguRoutes(router)
	ticketPageRoute(router)
	adminAuthRoutes(router)

	// Mutating CMS routes share the /api prefix with the public reads but
	// carry the admin guard.
	admin := router.Group("/api")
	admin.Use(middlewares.AdminAuth)

	ticketHandlers(router, admin)
	messageHandlers(router, admin)
	cmsHandlers(router, admin)
	summitHandlers(router, admin)

	port := os.Getenv("PORT")
	if port == "" {
		port = "9090"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %s", err)
	}
}
