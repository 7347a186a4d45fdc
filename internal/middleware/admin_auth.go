package middleware

import (
	"github.com/haierkeys/smart-mark-service/internal/domain"
	"github.com/haierkeys/smart-mark-service/pkg/app"
	"github.com/haierkeys/smart-mark-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// AdminAuth 管理员权限中间件，必须挂在 UserAuthToken 之后
// 放行条件：当前用户存在且带管理员标记
func AdminAuth(userRepo domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := app.NewResponse(c)

		uid := app.GetUID(c)
		if uid == 0 {
			response.ToResponse(code.ErrorNotUserAuthToken)
			c.Abort()
			return
		}

		user, err := userRepo.GetByUID(c.Request.Context(), uid)
		if err != nil || user == nil || !user.IsAdmin {
			response.ToResponse(code.ErrorNotAdminAuth)
			c.Abort()
			return
		}

		c.Next()
	}
}
