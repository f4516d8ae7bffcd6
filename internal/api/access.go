package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/greenacre-dev/farmdesk/internal/permission"
)

// role resolves the role query parameter, writing a 400 when it is
// missing. A failed custom-role lookup falls back to the parsed name so
// the dynamic tier can still match on it.
func (s *Server) role(c *gin.Context) (permission.Role, bool) {
	name := c.Query("role")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role is required"})
		return permission.Role{}, false
	}
	role, err := s.roles.Resolve(c.Request.Context(), name)
	if err != nil {
		s.logger.Warn("role lookup failed", zap.String("role", name), zap.Error(err))
		role = permission.ParseRole(name)
	}
	return role, true
}

func (s *Server) checkAccess(c *gin.Context) {
	role, ok := s.role(c)
	if !ok {
		return
	}
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}

	d := s.resolver.Allowed(c.Request.Context(), role, path)
	c.JSON(http.StatusOK, gin.H{
		"role":    role.Name(),
		"path":    path,
		"allowed": d.Allowed,
		"tier":    d.Tier,
	})
}

func (s *Server) checkPermission(c *gin.Context) {
	role, ok := s.role(c)
	if !ok {
		return
	}
	resource, action := c.Query("resource"), c.Query("action")
	if resource == "" || action == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resource and action are required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"role":     role.Name(),
		"resource": resource,
		"action":   action,
		"allowed":  permission.HasPermission(role, resource, action),
	})
}

func (s *Server) menu(c *gin.Context) {
	role, ok := s.role(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"role":   role.Name(),
		"routes": s.resolver.VisibleRoutes(c.Request.Context(), role, nil),
	})
}
