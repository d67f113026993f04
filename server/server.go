package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/ksuid"

	"github.com/chaos-io/whitebg/rembg"
	"github.com/chaos-io/whitebg/util"
)

const (
	// MaxUploadBytes 上传图片大小上限
	MaxUploadBytes = 32 << 20

	formField       = "image"
	requestIDHeader = "X-Request-Id"
)

type Server struct {
	remover rembg.Remover
	log     *slog.Logger
}

func New(remover rembg.Remover, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{remover: remover, log: log}
}

// Handler 组装路由
//
//	GET  /healthz
//	POST /v1/remove-background   multipart 字段 image，返回 image/png
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.accessLog())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	v1.POST("/remove-background", s.removeBackground)
	return r
}

func (s *Server) removeBackground(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes)

	fh, err := c.FormFile(formField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(c, http.StatusRequestEntityTooLarge, err)
			return
		}
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	file, err := fh.Open()
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	img, err := util.DecodeImage(file)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	out, err := s.remover.Remove(c.Request.Context(), img)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	data, err := util.EncodePNG(out)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	c.Data(http.StatusOK, "image/png", data)
}

func (s *Server) fail(c *gin.Context, code int, err error) {
	s.log.Warn("remove background failed",
		"request_id", c.GetString(requestIDHeader), "status", code, "error", err)
	c.AbortWithStatusJSON(code, gin.H{"error": err.Error()})
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = ksuid.New().String()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			"request_id", c.GetString(requestIDHeader),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}
