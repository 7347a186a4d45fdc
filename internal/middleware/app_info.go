package middleware

import (
	"github.com/haierkeys/smart-mark-service/global"
	internalApp "github.com/haierkeys/smart-mark-service/internal/app"
	pkgapp "github.com/haierkeys/smart-mark-service/pkg/app"

	"github.com/gin-gonic/gin"
)

func AppInfo() gin.HandlerFunc {

	return func(c *gin.Context) {
		c.Set("app_name", global.Name)
		c.Set("app_version", internalApp.Version)
		c.Set("access_host", pkgapp.GetAccessHost(c))

		c.Next()
	}
}
