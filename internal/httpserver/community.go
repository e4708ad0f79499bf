package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	communitysvc "agrihub/internal/service/community"
)

func listPostsHandler(community CommunityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		offset, _ := strconv.Atoi(c.Query("offset"))
		list, err := community.ListPosts(c.Request.Context(), c.Query("category"), limit, offset)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"posts": list})
	}
}

func getPostHandler(community CommunityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := community.GetPost(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func createPostHandler(community CommunityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in communitysvc.CreatePostInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		p, err := community.CreatePost(c.Request.Context(), currentProfile(c).ID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func likePostHandler(community CommunityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := community.LikePost(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type addCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func addCommentHandler(community CommunityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "content required"})
			return
		}
		comment, err := community.AddComment(c.Request.Context(), currentProfile(c).ID, c.Param("id"), req.Content)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, comment)
	}
}

func listCommentsHandler(community CommunityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := community.ListComments(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"comments": list})
	}
}
