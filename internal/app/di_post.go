package app

import (
	postHTTP "github.com/allisson/analytics/internal/post/http"
	postService "github.com/allisson/analytics/internal/post/service"
)

// PostService returns the upstream posts API client.
func (c *Container) PostService() postService.PostService {
	c.postServiceInit.Do(func() {
		c.postService = postService.NewPostService(c.config, nil)
	})
	return c.postService
}

// PostHandler returns the HTTP handler for the posts proxy.
func (c *Container) PostHandler() *postHTTP.PostHandler {
	c.postHandlerInit.Do(func() {
		c.postHandler = postHTTP.NewPostHandler(c.PostService(), c.Logger())
	})
	return c.postHandler
}
