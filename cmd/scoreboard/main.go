// Command scoreboard serves a small read-only admin HTTP surface over the
// scores recorded by internal/scoreboard.FileStore, for deployments that
// run games outside Nakama's own leaderboard.
package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"blocktower/internal/scoreboard"

	"github.com/gin-gonic/gin"
)

func main() {
	path := os.Getenv("BLOCKTOWER_SCORES_PATH")
	if path == "" {
		path = "scores.json"
	}
	addr := os.Getenv("BLOCKTOWER_SCOREBOARD_ADDR")
	if addr == "" {
		addr = ":8090"
	}

	store := scoreboard.NewFileStore(path)

	r := gin.Default()
	r.GET("/scores", func(c *gin.Context) {
		limit := 20
		if raw := c.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}

		entries, err := store.TopScores(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"scores": entries})
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	log.Printf("scoreboard listening on %s (scores file: %s)", addr, path)
	if err := r.Run(addr); err != nil {
		log.Fatalf("scoreboard: %v", err)
	}
}
