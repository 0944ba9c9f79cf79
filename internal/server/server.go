// Package server is the thin web layer over the wardrobe core: multipart
// upload in, JSON out. All intelligence lives in internal/core; handlers
// only sequence the collaborators (storage, index, weather) around it.
package server

import (
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/manntalati/smart-wardrobe/internal/core"
	"github.com/manntalati/smart-wardrobe/internal/core/index"
	"github.com/manntalati/smart-wardrobe/internal/core/model"
	"github.com/manntalati/smart-wardrobe/internal/store"
	"github.com/manntalati/smart-wardrobe/internal/weather"
)

type Server struct {
	Wardrobe  *core.Wardrobe
	Store     *store.Store
	Weather   *weather.Client
	UploadDir string
}

func New(w *core.Wardrobe, st *store.Store, wc *weather.Client, uploadDir string) *Server {
	return &Server{Wardrobe: w, Store: st, Weather: wc, UploadDir: uploadDir}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/api/items", s.UploadItem)
	r.GET("/api/items", s.ListItems)
	r.GET("/api/items/:id", s.GetItem)
	r.DELETE("/api/items/:id", s.DeleteItem)
	r.GET("/api/items/:id/similar", s.SimilarItems)
	r.GET("/api/recommendations", s.Recommendations)
	r.GET("/api/shopping", s.Shopping)
	r.GET("/api/health", s.Health)
	r.Static("/uploads", s.UploadDir)

	return r
}

// UploadItem classifies an uploaded clothing image, persists the item and
// inserts its embedding into the index. Classification failure rejects the
// upload; nothing is persisted on error.
func (s *Server) UploadItem(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file required"})
		return
	}
	if ct := file.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file must be an image"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}
	defer f.Close()
	imageBytes, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}

	attrs, embedding, err := s.Wardrobe.Classify(c.Request.Context(), imageBytes)
	if err != nil {
		log.Printf("Classification failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "classification failed"})
		return
	}

	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	filename := uuid.New().String() + ext
	diskPath := filepath.Join(s.UploadDir, filename)
	if err := os.WriteFile(diskPath, imageBytes, 0o644); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = titleCase(attrs.Color) + " " + titleCase(attrs.Category)
	}

	item := &model.Item{
		Name:         name,
		Category:     attrs.Category,
		Color:        attrs.Color,
		Pattern:      attrs.Pattern,
		Season:       attrs.Season,
		Fabric:       attrs.Fabric,
		OccasionTags: attrs.OccasionTags,
		ImagePath:    "/uploads/" + filename,
		Confidence:   attrs.Confidence,
		Embedding:    embedding,
	}
	if err := s.Store.Save(item); err != nil {
		os.Remove(diskPath)
		log.Printf("Failed to save item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save item"})
		return
	}

	if err := s.Wardrobe.IndexInsert(item.ID, embedding); err != nil {
		// Keep catalog and index in lock-step: a vector that cannot be
		// indexed must not leave an orphaned catalog row behind.
		if derr := s.Store.Delete(item.ID); derr != nil {
			log.Printf("DRIFT: item %d persisted but not indexed and rollback failed: %v", item.ID, derr)
		}
		os.Remove(diskPath)
		log.Printf("Index insert failed for item %d: %v", item.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to index item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "success",
		"item":           item,
		"classification": attrs,
	})
}

func (s *Server) ListItems(c *gin.Context) {
	items, err := s.Store.List()
	if err != nil {
		log.Printf("Failed to list items: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func (s *Server) GetItem(c *gin.Context) {
	id, ok := s.itemID(c)
	if !ok {
		return
	}
	item, err := s.Store.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteItem removes an item from the catalog, the index and disk in one
// logical operation. An index miss is drift and is logged loudly, but the
// catalog row still goes away.
func (s *Server) DeleteItem(c *gin.Context) {
	id, ok := s.itemID(c)
	if !ok {
		return
	}
	item, err := s.Store.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	if err := s.Store.Delete(id); err != nil {
		log.Printf("Failed to delete item %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete item"})
		return
	}
	if err := s.Wardrobe.IndexRemove(id); err != nil {
		if errors.Is(err, index.ErrNotFound) {
			log.Printf("DRIFT: item %d deleted from catalog but was not in the index", id)
		} else {
			log.Printf("Index removal failed for item %d: %v", id, err)
		}
	}
	if item.ImagePath != "" {
		os.Remove(filepath.Join(s.UploadDir, filepath.Base(item.ImagePath)))
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": id})
}

func (s *Server) SimilarItems(c *gin.Context) {
	id, ok := s.itemID(c)
	if !ok {
		return
	}
	item, err := s.Store.Get(id)
	if err != nil || len(item.Embedding) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found or has no embedding"})
		return
	}

	k := intQuery(c, "k", 5)
	results, err := s.Wardrobe.IndexQuery(item.Embedding, k, id)
	if err != nil {
		log.Printf("Similarity query failed for item %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "similarity query failed"})
		return
	}

	similar := make([]gin.H, 0, len(results))
	for _, res := range results {
		simItem, err := s.Store.Get(res.ID)
		if err != nil {
			log.Printf("DRIFT: index returned item %d missing from catalog", res.ID)
			continue
		}
		similar = append(similar, gin.H{"item": simItem, "similarity_score": res.Score})
	}

	c.JSON(http.StatusOK, gin.H{"similar_items": similar})
}

func (s *Server) Recommendations(c *gin.Context) {
	occasion := c.DefaultQuery("occasion", "casual")
	style := c.Query("style")
	numOutfits := intQuery(c, "num_outfits", 3)

	var snap *weather.Snapshot
	if city := c.Query("city"); city != "" {
		var err error
		snap, err = s.Weather.Current(c.Request.Context(), city)
		if err != nil {
			// Weather is advisory; recommendations proceed without it.
			log.Printf("Weather lookup for %q failed: %v", city, err)
			snap = nil
		}
	}

	items, err := s.Store.Snapshot()
	if err != nil {
		log.Printf("Failed to snapshot catalog: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wardrobe"})
		return
	}

	rec := s.Wardrobe.Recommend(c.Request.Context(), items, snap, occasion, style, numOutfits)
	c.JSON(http.StatusOK, rec)
}

func (s *Server) Shopping(c *gin.Context) {
	items, err := s.Store.Snapshot()
	if err != nil {
		log.Printf("Failed to snapshot catalog: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wardrobe"})
		return
	}

	report := s.Wardrobe.AnalyzeGaps(c.Request.Context(), items, c.Query("occasion"))
	c.JSON(http.StatusOK, report)
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":                "healthy",
		"service":               "Smart Wardrobe API",
		"classifier_configured": s.Wardrobe.Classifier != nil,
		"indexed_items":         s.Wardrobe.Index.Len(),
		"knowledge_chunks":      s.Wardrobe.Retriever.Len(),
	})
}

func (s *Server) itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return 0, false
	}
	return id, true
}

func intQuery(c *gin.Context, name string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(name)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
