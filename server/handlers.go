package server

import (
	"net/http"

	"github.com/Luismorlan/dramachaser/cache"
	"github.com/Luismorlan/dramachaser/fetcher"
	"github.com/Luismorlan/dramachaser/model"
	"github.com/Luismorlan/dramachaser/store"
	Logger "github.com/Luismorlan/dramachaser/utils/log"
	"github.com/gin-gonic/gin"
)

// DramaForm is the chase/abandon mutation payload submitted by the UI layer.
type DramaForm struct {
	UserId  string `form:"user_id" binding:"required"`
	DramaId string `form:"drama_id" binding:"required"`
}

// Deps are the core handles the handlers close over. Auth, sessions and HTML
// rendering live in a separate front end, this surface is JSON only.
type Deps struct {
	Subscriptions *store.SubscriptionStore
	Freshness     *cache.FreshnessCache
	Metadata      *cache.MetadataCache
	VOD           model.VOD
}

// RegisterRoutes binds the subscription mutation and query interface onto
// the router.
func RegisterRoutes(router *gin.Engine, deps *Deps) {
	router.POST("/chase", ChaseHandler(deps))
	router.POST("/abandon", AbandonHandler(deps))
	router.GET("/dramas", DramaMetadataHandler(deps))
	router.GET("/users", ListUsersHandler(deps))
	router.GET("/updates", UpdatesHandler(deps))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func ChaseHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		form := DramaForm{}
		if err := c.ShouldBind(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := deps.Subscriptions.Chase(c.Request.Context(), form.UserId, form.DramaId); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func AbandonHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		form := DramaForm{}
		if err := c.ShouldBind(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := deps.Subscriptions.Abandon(c.Request.Context(), form.UserId, form.DramaId); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// DramaMetadataHandler returns every drama a user tracks with its resolved
// name and the last observed show list as playable links. It reads cached
// state only and never triggers a show-list fetch, though a missing display
// name is resolved (and then cached forever) on the way out.
func DramaMetadataHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		dramaIds, err := deps.Subscriptions.ListTrackedDramas(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		dramas := map[string]model.DramaInfo{}
		for _, dramaID := range dramaIds {
			name, err := deps.Metadata.GetDramaName(c.Request.Context(), dramaID)
			if err != nil {
				Logger.Log.Warnf("fail to resolve name for drama %s: %v", dramaID, err)
				name = dramaID
			}
			showList, err := deps.Freshness.ShowList(c.Request.Context(), dramaID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			showURLs := []string{}
			for _, showID := range showList {
				showURLs = append(showURLs, fetcher.PlayURL(deps.VOD, showID))
			}
			dramas[fetcher.DetailURL(deps.VOD, dramaID)] = model.DramaInfo{
				DramaName: name,
				ShowList:  showURLs,
			}
		}
		c.JSON(http.StatusOK, dramas)
	}
}

func ListUsersHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := deps.Subscriptions.ListAllUsers(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

// UpdatesHandler exposes the freshness cache read path: the drama's delta,
// refreshed on stale exactly like the sweep does it.
func UpdatesHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		dramaID := c.Query("drama_id")
		if dramaID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "drama_id is required"})
			return
		}
		updates, err := deps.Freshness.GetUpdates(c.Request.Context(), dramaID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"drama_id": dramaID, "updates": updates})
	}
}
