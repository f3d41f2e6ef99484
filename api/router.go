// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"mediavault/media-api/catalog"
	"mediavault/media-api/db"
	"mediavault/media-api/media"
	"mediavault/media-api/middleware"
	"mediavault/media-api/security"
	"mediavault/media-api/storage"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

type API struct {
	DB      *gorm.DB
	Router  *gin.Engine
	Argon   *security.ArgonHash
	Blobs   *storage.Store
	Catalog *catalog.Store
	Manager *media.Manager
}

func NewRouter() (*API, error) {
	a := &API{}

	conn, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = conn

	makeLogger()

	blobs, err := storage.New(viper.GetString("storage.path"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob storage, %w", err)
	}

	a.Blobs = blobs
	a.Catalog = catalog.New(conn)
	a.Manager = media.NewManager(a.Catalog, blobs)
	a.Argon = security.New()

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	a.Router.MaxMultipartMemory = 5 << 20

	jwt := middleware.NewJWTMiddleware(conn)
	maxUploadSize := viper.GetInt64("upload.max_size")

	// Blobs are public by URL, same as the catalog's file_url contract
	router.Static(storage.URLPrefix, blobs.Root())

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)
	}

	auth := main.Group("/auth",
		middleware.BodySizeLimiter(1<<20),
		middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
			RequestsPerSecond: 2,
			Burst:             5,
		}),
	)
	{
		// POST /api/auth/register	-> Registers a new user
		auth.POST("/register", a.UserRegister)

		// POST /api/auth/login		-> Logs in a user and returns a JWT cookie
		auth.POST("/login", a.UserLogin)
	}

	folders := main.Group("/folders", jwt)
	{
		// POST /api/folders		-> Creates a folder
		folders.POST("", a.FolderCreate)

		// GET /api/folders		-> Lists the user's folders, newest first
		folders.GET("", a.FolderList)

		// DELETE /api/folders/:id	-> Deletes a folder and everything in it
		folders.DELETE("/:id", a.FolderDelete)
	}

	med := main.Group("/media", jwt)
	{
		// POST /api/media/upload	-> Uploads a single file with metadata
		med.POST("/upload", middleware.BodySizeLimiter(maxUploadSize), a.MediaUpload)

		// POST /api/media/multi-upload	-> Uploads several files at once
		med.POST("/multi-upload", middleware.BodySizeLimiter(maxUploadSize*8), a.MediaUploadMulti)

		// GET /api/media		-> Lists the user's media with tags
		med.GET("", a.MediaList)

		// GET /api/media/search	-> Searches descriptions and tag names
		med.GET("/search", a.MediaSearch)

		// GET /api/media/:id		-> Returns a single media with tags
		med.GET("/:id", a.MediaFetch)

		// PUT /api/media/:id		-> Edits description/folder/tags
		med.PUT("/:id", a.MediaEdit)

		// DELETE /api/media/bulk	-> Deletes several media at once
		med.DELETE("/bulk", a.MediaDeleteBulk)

		// DELETE /api/media/:id	-> Deletes a single media
		med.DELETE("/:id", a.MediaDelete)
	}

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
