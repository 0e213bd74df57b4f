package api

import (
	"context"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LJTian/DailyDigest/internal/scheduler"
	"github.com/LJTian/DailyDigest/internal/storage"
	"github.com/LJTian/DailyDigest/internal/trends"
)

type Server struct {
	store  *storage.Store
	sched  *scheduler.Scheduler
	trends *trends.Aggregator
}

func NewServer(store *storage.Store, sched *scheduler.Scheduler, agg *trends.Aggregator) *Server {
	return &Server{store: store, sched: sched, trends: agg}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/articles", s.listArticles)
		v1.GET("/articles/:id", s.getArticle)
		v1.GET("/sources", s.listSources)
		v1.GET("/search", s.search)
		v1.GET("/status", s.status)
		v1.GET("/analytics/sentiment", s.sentimentDistribution)
		v1.GET("/analytics/trends", s.trendingTopics)
		v1.GET("/export/articles.csv", s.exportCSV)
		v1.POST("/scrape", s.triggerScrape)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listArticles(c *gin.Context) {
	source := c.Query("source")
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)

	items, err := s.store.ListArticles(source, limit, offset)
	if err != nil {
		internalError(c)
		return
	}
	ok(c, items)
}

func (s *Server) getArticle(c *gin.Context) {
	a, err := s.store.GetArticle(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "not_found",
			"message": "article not found",
		})
		return
	}
	ok(c, a)
}

func (s *Server) listSources(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	items, err := s.store.ListSources(activeOnly)
	if err != nil {
		internalError(c)
		return
	}
	ok(c, items)
}

func (s *Server) search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "bad_request",
			"message": "query parameter q is required",
		})
		return
	}

	items, err := s.store.SearchArticles(q, intQuery(c, "limit", 50))
	if err != nil {
		internalError(c)
		return
	}
	ok(c, items)
}

// status 返回每个源最近一轮采集的执行结果
func (s *Server) status(c *gin.Context) {
	ok(c, s.sched.LastReports())
}

func (s *Server) sentimentDistribution(c *gin.Context) {
	dist, err := s.store.SentimentDistribution()
	if err != nil {
		internalError(c)
		return
	}
	ok(c, dist)
}

func (s *Server) trendingTopics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	// hours=0 表示使用配置的默认窗口
	window := time.Duration(intQuery(c, "hours", 0)) * time.Hour
	snap, err := s.trends.SnapshotWindow(ctx, window)
	if err != nil {
		internalError(c)
		return
	}
	ok(c, snap)
}

// triggerScrape 手动触发一轮采集。source 为空表示全部源；
// 某个源上一轮还在跑时，本次对它的触发被合并跳过
func (s *Server) triggerScrape(c *gin.Context) {
	source := c.Query("source")
	if source != "" && !s.sched.HasSource(source) {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "not_found",
			"message": "unknown source: " + source,
		})
		return
	}

	result := s.sched.TriggerCycle(context.Background(), source)
	c.JSON(http.StatusAccepted, gin.H{
		"code":    "ok",
		"message": "cycle triggered",
		"data":    result,
	})
}

// exportCSV 导出最近的文章摘要信息为 CSV
func (s *Server) exportCSV(c *gin.Context) {
	source := c.Query("source")
	limit := intQuery(c, "limit", 500)

	items, err := s.store.ListArticles(source, limit, 0)
	if err != nil {
		internalError(c)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="articles.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"id", "title", "url", "source", "category", "sentiment_label", "sentiment_score", "published_at", "scraped_at"})
	for i := range items {
		a := &items[i]
		published := ""
		if a.PublishedAt != nil {
			published = a.PublishedAt.Format(time.RFC3339)
		}
		_ = w.Write([]string{
			a.ID,
			a.Title,
			a.URL,
			a.Source,
			a.Category,
			a.SentimentLabel,
			strconv.FormatFloat(a.SentimentScore, 'f', 4, 64),
			published,
			a.ScrapedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
}

func intQuery(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return v
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    data,
	})
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":    "internal_error",
		"message": "internal server error",
	})
}
