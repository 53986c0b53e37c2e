package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manosay/manosay/backend/go-services/internal/models"
	"github.com/manosay/manosay/backend/go-services/internal/posts"
	"github.com/manosay/manosay/backend/go-services/pkg/logger"
)

// SiteHandler serves the public pages.
type SiteHandler struct {
	posts *posts.Service
}

func NewSiteHandler(p *posts.Service) *SiteHandler {
	return &SiteHandler{posts: p}
}

func (h *SiteHandler) Register(r *gin.Engine) {
	r.GET("/", h.Home)
	r.GET("/blog", h.BlogList)
	r.GET("/blog/:slug", h.BlogPost)
	r.GET("/privacy-policy", h.PrivacyPolicy)
}

// Home renders the landing page with the most recent posts. The page still
// renders without posts when the store is unavailable.
func (h *SiteHandler) Home(c *gin.Context) {
	recent, err := h.posts.Recent(c.Request.Context(), posts.RecentCount)
	if err != nil {
		logger.Warnf("home: recent posts unavailable: %v", err)
		recent = nil
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"page_title":   "Home - Manosay",
		"active_page":  "home",
		"projects":     projects,
		"features":     features,
		"services":     services,
		"recent_posts": recent,
	})
}

func (h *SiteHandler) BlogList(c *gin.Context) {
	list, err := h.posts.ListPublished(c.Request.Context())
	if err != nil {
		h.errorPage(c, err)
		return
	}
	c.HTML(http.StatusOK, "blog.html", gin.H{
		"page_title":  "Blog - Manosay",
		"active_page": "blog",
		"posts":       list,
	})
}

// BlogPost renders one published post; unknown slugs go back to the list.
func (h *SiteHandler) BlogPost(c *gin.Context) {
	p, err := h.posts.GetPublished(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.errorPage(c, err)
		return
	}
	if p == nil {
		c.Redirect(http.StatusFound, "/blog")
		return
	}
	c.HTML(http.StatusOK, "blog-post.html", gin.H{
		"page_title":  p.Title + " - Manosay",
		"active_page": "blog",
		"post":        p,
	})
}

func (h *SiteHandler) PrivacyPolicy(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy-policy.html", gin.H{
		"page_title":  "Privacy Policy - Manosay",
		"active_page": "",
	})
}

func (h *SiteHandler) errorPage(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.HTML(status, "blog.html", gin.H{
		"page_title":  "Blog - Manosay",
		"active_page": "blog",
		"posts":       []*models.Post{},
		"error":       msg,
	})
}
