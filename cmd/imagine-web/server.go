package main

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/imagine-dev/imagine"
	"github.com/imagine-dev/imagine/internal/config"

	_ "embed"
)

//go:embed index.html
var indexHTML []byte

const sessionCookie = "imagine_session"

type server struct {
	cfg    *config.Config
	router *gin.Engine

	mu       sync.Mutex
	sessions map[string]*imagine.Gallery
}

func newServer(cfg *config.Config) *server {
	s := &server{
		cfg:      cfg,
		sessions: map[string]*imagine.Gallery{},
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", s.handleIndex)
	r.GET("/download/:id", s.handleDownload)

	api := r.Group("/api")
	api.Use(cors.Default())
	api.GET("/models", s.handleModels)
	api.POST("/generate", s.handleGenerate)
	api.GET("/gallery", s.handleGallery)
	api.POST("/gallery/clear", s.handleClear)

	s.router = r
	return s
}

func (s *server) run() error {
	return s.router.Run(s.cfg.ListenAddr)
}

// gallery returns the per-session store, creating the session cookie on first
// contact. Sessions are independent; nothing outlives the process.
func (s *server) gallery(c *gin.Context) *imagine.Gallery {
	id, err := c.Cookie(sessionCookie)
	if err != nil || id == "" {
		id = uuid.NewString()
		c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.sessions[id]
	if !ok {
		g = imagine.NewGallery()
		s.sessions[id] = g
	}
	return g
}

func (s *server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *server) handleModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": imagine.Models(), "default": imagine.DefaultImageModel})
}

type generateRequest struct {
	Kind           string  `json:"kind"`
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt"`
	Model          string  `json:"model"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Steps          int     `json:"steps"`
	Guidance       float64 `json:"guidance"`
	Seed           *int64  `json:"seed"`
}

type artifactResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	MIME      string    `json:"mime"`
	Source    string    `json:"source"`
	Status    string    `json:"status"`
	Prompt    string    `json:"prompt"`
	Data      string    `json:"data,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cred := imagine.Credential{Token: s.cfg.HFToken, Provider: s.cfg.HFProvider}

	var (
		res *imagine.GenerationResult
		err error
	)
	if req.Kind == string(imagine.KindVideo) {
		res, err = imagine.GenerateVideo(c.Request.Context(), imagine.GenerateVideoRequest{
			Prompt:     req.Prompt,
			Credential: cred,
		})
	} else {
		res, err = imagine.GenerateImage(c.Request.Context(), imagine.GenerateImageRequest{
			Prompt:         req.Prompt,
			NegativePrompt: req.NegativePrompt,
			Model:          req.Model,
			Width:          pick(req.Width, s.cfg.DefaultWidth),
			Height:         pick(req.Height, s.cfg.DefaultHeight),
			Steps:          pick(req.Steps, s.cfg.DefaultSteps),
			Guidance:       pickFloat(req.Guidance, s.cfg.DefaultGuidance),
			Seed:           req.Seed,
			Credential:     cred,
		})
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := s.gallery(c).Append(req.Prompt, res)
	slog.Info("generated", "kind", res.Kind, "source", res.Source, "bytes", len(res.Bytes))
	c.JSON(http.StatusOK, toArtifact(entry, true))
}

func (s *server) handleGallery(c *gin.Context) {
	n := imagine.GalleryDisplayImages
	entries := s.gallery(c).Recent(n)
	out := make([]artifactResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toArtifact(e, true))
	}
	c.JSON(http.StatusOK, gin.H{"entries": out})
}

func (s *server) handleClear(c *gin.Context) {
	s.gallery(c).Clear()
	c.Status(http.StatusNoContent)
}

func (s *server) handleDownload(c *gin.Context) {
	entry, ok := s.gallery(c).Get(c.Param("id"))
	if !ok || len(entry.Result.Bytes) == 0 {
		c.Status(http.StatusNotFound)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+downloadName(entry.Result)+`"`)
	c.Data(http.StatusOK, entry.Result.MIME, entry.Result.Bytes)
}

func downloadName(res *imagine.GenerationResult) string {
	switch {
	case res.Kind == imagine.KindVideo && res.MIME == "image/gif":
		return "generation.gif"
	case res.Kind == imagine.KindVideo:
		return "generation.mp4"
	default:
		return "generation.png"
	}
}

func toArtifact(e imagine.GalleryEntry, withData bool) artifactResponse {
	out := artifactResponse{
		ID:        e.ID,
		Kind:      string(e.Result.Kind),
		MIME:      e.Result.MIME,
		Source:    string(e.Result.Source),
		Status:    e.Result.Status,
		Prompt:    e.Prompt,
		CreatedAt: e.CreatedAt,
	}
	if withData && len(e.Result.Bytes) > 0 {
		out.Data = base64.StdEncoding.EncodeToString(e.Result.Bytes)
	}
	return out
}

func pick(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func pickFloat(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}
